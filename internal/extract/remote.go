package extract

import (
	"github.com/DataMentes/Job-Market-Insights-analysis/internal/types"
)

var (
	remotePattern = keywordPattern(
		[]string{`remote(?:ly)?`, `work from home`, `wfh`, `telecommut\w*`},
		[]string{`عن بعد`, `عن بُعد`, `من المنزل`},
	)
	hybridPattern = keywordPattern(
		[]string{`hybrid`},
		[]string{`هجين`, `مختلط`},
	)
)

// Remote returns the remote mode text states. Hybrid is checked after remote and
// overwrites it; text with neither keeps current.
func (e *Extractor) Remote(text string, current types.RemoteMode) types.RemoteMode {
	if matches(e.remote, text) {
		current = types.RemoteRemote
	}
	if matches(e.hybrid, text) {
		current = types.RemoteHybrid
	}
	return current
}
