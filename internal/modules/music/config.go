package music

// Config holds the music module configuration.
type Config struct {
	CatalogClientID     string `env:"CATALOG_CLIENT_ID,notEmpty"`
	CatalogClientSecret string `env:"CATALOG_CLIENT_SECRET,notEmpty"`
	YtdlpCookies        string `env:"YTDLP_COOKIES"`
	YtdlpSourceAddress  string `env:"YTDLP_SOURCE_ADDRESS"`
}
