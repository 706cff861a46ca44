package tagsearch

import (
	"github.com/ruby-gems/metka/common/config"
	"github.com/ruby-gems/metka/component/tagparser"
)

// Configure applies the process-wide tagging settings: the default
// parser delimiter and the search result cap. Call once at startup;
// scopes built with WithParser or WithSearchLimit are unaffected.
func Configure(cfg *config.Config) {
	tagparser.SetDefault(tagparser.NewGenericParser(cfg.Tagging.Delimiter))
	if cfg.Tagging.SearchLimit > 0 {
		defaultSearchLimit = cfg.Tagging.SearchLimit
	}
}
