package types

// ClientConf 包含一次命令往返所需的全部参数
type ClientConf struct {
	Host        string `ini:"host"`
	Port        int    `ini:"port"`
	Command     string `ini:"command"`
	BufferSize  int    `ini:"buffer_size"`
	DialTimeout int    `ini:"dial_timeout"` // 秒, 0 表示不设超时
	Socks5      string `ini:"socks5"`       // host:port, 为空则直连
	Interface   string `ini:"interface"`
	Mark        int    `ini:"mark"`
}

// LogConf contains logging specific configuration
type LogConf struct {
	Level string `ini:"level"`
}

// Config 是 cmdprobe 的统一配置结构体
type Config struct {
	ClientConf `ini:"client"`
	LogConf    `ini:"log"`
}

// TrafficStats 用于报告一次往返的流量统计
type TrafficStats struct {
	Uplink   uint64
	Downlink uint64
}
