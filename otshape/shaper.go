package otshape

import (
	"github.com/npillmayer/typeshape/ot"
	xlanguage "golang.org/x/text/language"
)

// Options collects shaping parameters.
type Options struct {
	Features  []FeatureRange // OpenType features to turn on or off
	Vertical  bool           // vertical layout
	Language  xlanguage.Tag  // BCP 47 language tag, selects the language system
	ScriptTag ot.Tag         // OpenType script tag to use instead of deriving it
	Alternate int            // alternate to choose for alternate substitutions
}

// FeatureRange tells a shaper to turn a certain OpenType feature on or off for a
// run of code-points.
//
// Start and End are cluster positions; Start == End == 0 stands for the whole
// run.
type FeatureRange struct {
	Feature    ot.Tag // 4-letter feature tag
	On         bool   // turn it on or off?
	Start, End int    // position of code-points to apply feature for
}

func (fr FeatureRange) global() bool {
	return fr.Start == 0 && fr.End == 0
}

func (fr FeatureRange) covers(cluster int) bool {
	return fr.global() || (cluster >= fr.Start && cluster < fr.End)
}
