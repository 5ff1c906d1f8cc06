package config

type Config struct {
	Server        server        `yaml:"server" mapstructure:"server"`
	Mysql         mysql         `yaml:"mysql" mapstructure:"mysql"`
	Redis         redis         `yaml:"redis" mapstructure:"redis"`
	Minio         minio         `yaml:"minio" mapstructure:"minio"`
	Elasticsearch elasticsearch `yaml:"elasticsearch" mapstructure:"elasticsearch"`
	RabbitMq      rabbitmq      `yaml:"rabbitmq" mapstructure:"rabbitmq"`
	Jwt           jwt           `yaml:"jwt" mapstructure:"jwt"`
	Jaeger        jaeger        `yaml:"jaeger" mapstructure:"jaeger"`
	Pagination    Pagination    `yaml:"pagination" mapstructure:"pagination"`
	Counter       Counter       `yaml:"counter" mapstructure:"counter"`
	Cascade       Cascade       `yaml:"cascade" mapstructure:"cascade"`
	Comment       Comment       `yaml:"comment" mapstructure:"comment"`
	Snowflake     snowflake     `yaml:"snowflake" mapstructure:"snowflake"`
	Log           Log           `yaml:"log" mapstructure:"log"`
	Pprof         pprof         `yaml:"pprof" mapstructure:"pprof"`
	Sentinel      Sentinel      `yaml:"sentinel" mapstructure:"sentinel"`
}

type server struct {
	Addr           string   `yaml:"addr" mapstructure:"addr"`
	MaxBodySize    int      `yaml:"max_body_size" mapstructure:"max_body_size"`
	AllowOrigins   []string `yaml:"allow_origins" mapstructure:"allow_origins"`
	UploadTempDir  string   `yaml:"upload_temp_dir" mapstructure:"upload_temp_dir"`
	RequestTimeout string   `yaml:"request_timeout" mapstructure:"request_timeout"`
}

type mysql struct {
	Addr            string `yaml:"addr" mapstructure:"addr"`
	Database        string `yaml:"database" mapstructure:"database"`
	Username        string `yaml:"username" mapstructure:"username"`
	Password        string `yaml:"password" mapstructure:"password"`
	Charset         string `yaml:"charset" mapstructure:"charset"`
	MaxOpenConns    int    `yaml:"max_open_conns" mapstructure:"max_open_conns"`
	MaxIdleConns    int    `yaml:"max_idle_conns" mapstructure:"max_idle_conns"`
	ConnMaxLifetime string `yaml:"conn_max_lifetime" mapstructure:"conn_max_lifetime"`
	QueryTimeout    string `yaml:"query_timeout" mapstructure:"query_timeout"`
}

type redis struct {
	Addr     string `yaml:"addr" mapstructure:"addr"`
	Password string `yaml:"password" mapstructure:"password"`
	DB       int    `yaml:"db" mapstructure:"db"`
}

type minio struct {
	Endpoint        string `yaml:"endpoint" mapstructure:"endpoint"`
	AccessKeyID     string `yaml:"access_key_id" mapstructure:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key" mapstructure:"secret_access_key"`
	UseSSL          bool   `yaml:"use_ssl" mapstructure:"use_ssl"`
	Bucket          string `yaml:"bucket" mapstructure:"bucket"`
	Region          string `yaml:"region" mapstructure:"region"`
	PublicBaseURL   string `yaml:"public_base_url" mapstructure:"public_base_url"`
}

type elasticsearch struct {
	Enable bool     `yaml:"enable" mapstructure:"enable"`
	URLs   []string `yaml:"urls" mapstructure:"urls"`
	Index  string   `yaml:"index" mapstructure:"index"`
	// 全文检索最多返回的命中数，用作 textSearch 阶段的候选集合
	MaxHits int `yaml:"max_hits" mapstructure:"max_hits"`
}

type rabbitmq struct {
	Enable   bool   `yaml:"enable" mapstructure:"enable"`
	Addr     string `yaml:"addr" mapstructure:"addr"`
	Username string `yaml:"username" mapstructure:"username"`
	Password string `yaml:"password" mapstructure:"password"`
}

type jwt struct {
	Secret     string `yaml:"secret" mapstructure:"secret"`
	Realm      string `yaml:"realm" mapstructure:"realm"`
	Timeout    string `yaml:"timeout" mapstructure:"timeout"`
	MaxRefresh string `yaml:"max_refresh" mapstructure:"max_refresh"`
}

type jaeger struct {
	Enable      bool   `yaml:"enable" mapstructure:"enable"`
	ServiceName string `yaml:"service_name" mapstructure:"service_name"`
	AgentAddr   string `yaml:"agent_addr" mapstructure:"agent_addr"`
}

type Pagination struct {
	DefaultLimit int `yaml:"default_limit" mapstructure:"default_limit"`
	MaxLimit     int `yaml:"max_limit" mapstructure:"max_limit"`
}

type Counter struct {
	RetryBackoff string `yaml:"retry_backoff" mapstructure:"retry_backoff"`
}

type Cascade struct {
	Transactional bool `yaml:"transactional" mapstructure:"transactional"`
}

type Comment struct {
	MaxLength        int `yaml:"max_length" mapstructure:"max_length"`
	RateLimit        int `yaml:"rate_limit" mapstructure:"rate_limit"`
	DuplicateWindowS int `yaml:"duplicate_window_seconds" mapstructure:"duplicate_window_seconds"`
	RateLimitWindowS int `yaml:"rate_limit_window_seconds" mapstructure:"rate_limit_window_seconds"`
}

type snowflake struct {
	Node int64 `yaml:"node" mapstructure:"node"`
}

type Log struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

type pprof struct {
	Enable bool   `yaml:"enable" mapstructure:"enable"`
	Addr   string `yaml:"addr" mapstructure:"addr"`
}

type Sentinel struct {
	Enable bool `yaml:"enable" mapstructure:"enable"`
	// 每秒允许通过的写请求数（点赞、评论、订阅）
	WriteQPS float64 `yaml:"write_qps" mapstructure:"write_qps"`
}
