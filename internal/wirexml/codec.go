// Package wirexml 实现网关报文的扁平 XML 编解码。
// 报文固定为单一根节点，子节点一层 key/value，不支持嵌套。
package wirexml

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"sort"
	"strings"
)

// DecodeError 表示入站 XML 无法解析为扁平报文
type DecodeError struct {
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("wirexml decode: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("wirexml decode: %s", e.Reason)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Encode 将扁平报文编码为 <xml> 包裹的 XML，子节点按 key 升序输出
func Encode(fields map[string]string) []byte {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	sb.WriteString("<xml>")
	for _, k := range keys {
		sb.WriteString("<")
		sb.WriteString(k)
		sb.WriteString(">")
		_ = xml.EscapeText(&sb, []byte(fields[k]))
		sb.WriteString("</")
		sb.WriteString(k)
		sb.WriteString(">")
	}
	sb.WriteString("</xml>")
	return []byte(sb.String())
}

// Decode 解析网关 XML，取根节点的一层子节点构成扁平报文。
// CDATA 与普通文本统一还原为字符串，解析失败返回 *DecodeError。
func Decode(raw []byte) (map[string]string, error) {
	dec := xml.NewDecoder(bytes.NewReader(raw))

	// 定位根节点
	var root xml.StartElement
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return nil, &DecodeError{Reason: "missing root element"}
		}
		if err != nil {
			return nil, &DecodeError{Reason: "malformed xml", Err: err}
		}
		if se, ok := tok.(xml.StartElement); ok {
			root = se
			break
		}
	}

	fields := make(map[string]string)
	depth := 0
	var key string
	var text strings.Builder
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return nil, &DecodeError{Reason: "unexpected eof"}
		}
		if err != nil {
			return nil, &DecodeError{Reason: "malformed xml", Err: err}
		}
		switch t := tok.(type) {
		case xml.StartElement:
			depth++
			if depth == 1 {
				key = t.Name.Local
				text.Reset()
			}
		case xml.CharData:
			// CDATA 与文本节点在这里已被解码器统一处理
			if depth == 1 {
				text.Write(t)
			}
		case xml.EndElement:
			if depth == 0 {
				if t.Name.Local != root.Name.Local {
					return nil, &DecodeError{Reason: "unbalanced document"}
				}
				return fields, nil
			}
			if depth == 1 {
				fields[key] = text.String()
			}
			depth--
		}
	}
}
