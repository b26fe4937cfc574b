package ch

import (
	"os"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/ClickHouse/clickhouse-go/v2"
)

// BuildClientInfo tags connections so system.query_log shows which binary ran a query
// role is the binary (tglang-api); tag is the deployment label
func BuildClientInfo(role, tag string) clickhouse.ClientInfo {
	host, _ := os.Hostname()

	type kv = struct{ Name, Version string }
	var products []kv
	add := func(name, v string) {
		if v = strings.TrimSpace(v); v != "" {
			products = append(products, kv{Name: name, Version: v})
		}
	}
	add("tglang", tag)
	add("role", role)
	add("go", runtime.Version())
	add("commit", revision())
	add("host", host)

	return clickhouse.ClientInfo{Products: products}
}

func revision() string {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, s := range bi.Settings {
		if s.Key == "vcs.revision" && len(s.Value) >= 7 {
			return s.Value[:7]
		}
	}
	return ""
}
