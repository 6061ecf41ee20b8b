package wirexml

import (
	"errors"
	"strings"
	"testing"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	cases := []map[string]string{
		{"appid": "A", "mch_id": "M"},
		{"return_code": "SUCCESS"},
		{
			"appid":        "wxcd2bfbbc93382620",
			"mch_id":       "1544401641",
			"out_trade_no": "20230101120000",
			"body":         "test & <escape>",
			"total_fee":    "1",
			"nonce_str":    "q8FJvFqNQ2vpAOyMLrEUqWsDSNT7hGNr",
		},
	}
	for _, m := range cases {
		got, err := Decode(Encode(m))
		if err != nil {
			t.Fatalf("decode failed: %v", err)
		}
		if len(got) != len(m) {
			t.Fatalf("field count mismatch: got %d, want %d", len(got), len(m))
		}
		for k, v := range m {
			if got[k] != v {
				t.Errorf("field %q: got %q, want %q", k, got[k], v)
			}
		}
	}
}

func TestEncodeShape(t *testing.T) {
	out := string(Encode(map[string]string{"appid": "A", "mch_id": "M"}))
	// 子节点按 key 升序输出，便于比对报文
	want := "<xml><appid>A</appid><mch_id>M</mch_id></xml>"
	if out != want {
		t.Errorf("encode output: got %s, want %s", out, want)
	}
}

func TestDecodeCDATA(t *testing.T) {
	raw := []byte("<xml><return_code><![CDATA[SUCCESS]]></return_code><return_msg><![CDATA[OK]]></return_msg><prepay_id><![CDATA[wx201410272009395522657a690389285100]]></prepay_id></xml>")
	got, err := Decode(raw)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if got["return_code"] != "SUCCESS" {
		t.Errorf("return_code: got %q", got["return_code"])
	}
	if got["prepay_id"] != "wx201410272009395522657a690389285100" {
		t.Errorf("prepay_id: got %q", got["prepay_id"])
	}
}

func TestDecodeMixedText(t *testing.T) {
	raw := []byte("<xml><return_msg>OK<![CDATA[!]]></return_msg></xml>")
	got, err := Decode(raw)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if got["return_msg"] != "OK!" {
		t.Errorf("mixed text: got %q, want %q", got["return_msg"], "OK!")
	}
}

func TestDecodeIgnoresWhitespaceBetweenChildren(t *testing.T) {
	raw := []byte("<xml>\n  <appid>A</appid>\n  <mch_id>M</mch_id>\n</xml>")
	got, err := Decode(raw)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if got["appid"] != "A" || got["mch_id"] != "M" {
		t.Errorf("unexpected fields: %v", got)
	}
}

func TestDecodeMalformed(t *testing.T) {
	for _, raw := range []string{
		"",
		"   ",
		"not xml at all",
		"<xml><appid>A</xml>",
		"<xml><appid>A</appid>",
	} {
		_, err := Decode([]byte(raw))
		if err == nil {
			t.Errorf("decode %q: expected error", raw)
			continue
		}
		var de *DecodeError
		if !errors.As(err, &de) {
			t.Errorf("decode %q: error is not *DecodeError: %v", raw, err)
		}
	}
}

func TestDecodeErrorMessage(t *testing.T) {
	_, err := Decode([]byte("<xml><a>"))
	if err == nil || !strings.Contains(err.Error(), "wirexml decode") {
		t.Errorf("unexpected error: %v", err)
	}
}
