package idgen

import (
	"fmt"
	"log"
	"time"

	"github.com/bwmarrin/snowflake"
)

var node *snowflake.Node

// Init 初始化 Snowflake 节点（支持多实例部署）
func Init(nodeID int64) {
	n, err := snowflake.NewNode(nodeID)
	if err != nil {
		log.Fatalf("[IDGen] init snowflake node failed: %v", err)
	}
	node = n
}

// New 生成全局唯一 ID
func New() uint64 {
	if node == nil {
		panic("idgen: snowflake node not initialized")
	}
	return uint64(node.Generate().Int64())
}

// OrderNo 生成商户订单号：秒级时间戳前缀 + Snowflake 序列后缀。
// 前缀保证可读可排序，后缀保证同秒并发不冲突。
func OrderNo(t time.Time) string {
	return fmt.Sprintf("%s%010d", t.Format("20060102150405"), New()%1e10)
}
