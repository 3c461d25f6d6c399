package config

// Lookup failure policies.
const (
	OnErrorFail  = "fail"
	OnErrorLocal = "local"
)

const (
	defaultInputPath              = "data/scrobbles.tsv"
	defaultOutputPath             = "scrobbles.ttl"
	defaultLookupEndpoint         = "http://lookup.dbpedia.org/api/search/KeywordSearch"
	defaultLookupUserAgent        = "scrobblegraph/dev"
	defaultLookupTimeoutSeconds   = 10
	defaultLookupMaxRetries       = 3
	defaultLookupInitialBackoffMS = 500
	defaultLookupMaxBackoffMS     = 8000
	defaultLocalNamespace         = "http://ernes7a.lt/sws/"
	defaultLogFormat              = "console"
	defaultLogLevel               = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			Input:  defaultInputPath,
			Output: defaultOutputPath,
		},
		Lookup: Lookup{
			Enabled:          true,
			Endpoint:         defaultLookupEndpoint,
			UserAgent:        defaultLookupUserAgent,
			TimeoutSeconds:   defaultLookupTimeoutSeconds,
			MaxRetries:       defaultLookupMaxRetries,
			InitialBackoffMS: defaultLookupInitialBackoffMS,
			MaxBackoffMS:     defaultLookupMaxBackoffMS,
			OnError:          OnErrorFail,
		},
		LookupCache: LookupCache{
			Path: defaultLookupCachePath(),
		},
		Graph: Graph{
			LocalNamespace: defaultLocalNamespace,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
