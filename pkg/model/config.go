package model

// Cfg is the main configuration structure for this module
type Cfg struct {
	Common   Common      `yaml:"common"`
	Registry RegistryCfg `yaml:"registry" validate:"omitempty"`
	Verifier VerifierCfg `yaml:"verifier" validate:"omitempty"`
	Portal   PortalCfg   `yaml:"portal" validate:"omitempty"`
}

// Common holds the common configuration
type Common struct {
	Production bool    `yaml:"production"`
	Log        Log     `yaml:"log"`
	Tracing    Tracing `yaml:"tracing" validate:"required"`
	QR         QRCfg   `yaml:"qr" validate:"omitempty"`
}

// Log holds the log configuration
type Log struct {
	Level      string `yaml:"level"`
	FolderPath string `yaml:"folder_path"`
}

// Tracing holds the opentelemetry configuration
type Tracing struct {
	Addr    string `yaml:"addr" validate:"required"`
	Timeout int    `yaml:"timeout" default:"10"`
}

// QRCfg holds the qr rendering configuration
type QRCfg struct {
	Size int `yaml:"size" default:"256"`
}

// APIServer holds the api server configuration
type APIServer struct {
	Addr string `yaml:"addr" validate:"required"`
	TLS  TLS    `yaml:"tls" validate:"omitempty"`
}

// TLS holds the tls configuration
type TLS struct {
	Enabled      bool   `yaml:"enabled"`
	CertFilePath string `yaml:"cert_file_path"`
	KeyFilePath  string `yaml:"key_file_path"`
}

// RegistryCfg holds the registry service configuration
type RegistryCfg struct {
	APIServer APIServer `yaml:"api_server" validate:"required"`

	// AuthorityName is the main authority's human-readable name
	AuthorityName string `yaml:"authority_name" default:"Auth490"`

	// KeyFile persists the main authority's private key in PK: transport
	// form; generated on first start when absent
	KeyFile string `yaml:"key_file" default:".pk"`
}

// VerifierCfg holds the verifier service configuration
type VerifierCfg struct {
	APIServer APIServer `yaml:"api_server" validate:"required"`

	// SessionTTL is the lifetime of a presentation session in seconds
	SessionTTL int `yaml:"session_ttl" default:"300"`

	// AllowAuthorityPresenter enables the self-issued credential flow
	AllowAuthorityPresenter bool `yaml:"allow_authority_presenter"`
}

// PortalCfg holds the portal service configuration
type PortalCfg struct {
	APIServer APIServer `yaml:"api_server" validate:"required"`

	// SessionKey authenticates the wallet cookie session
	SessionKey string `yaml:"session_key" default:"auth490-wallet"`
}
