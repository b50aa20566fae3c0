/*
Package otuse provides the Universal Shaping Engine for package otshape. It
shapes the complex scripts without an engine of their own, e.g. Balinese,
Javanese, Khmer, Tai Tham or Tibetan.

Code points are classified into the categories of the Universal Shaping
Engine, which describe the role of a character in a cluster: bases, halants,
vowel signs and their modifiers, medial and final consonants. Categories are
derived from Unicode character data, not from the font. A cluster grammar
splits the text into clusters; clusters not conforming to the grammar get a
dotted circle as their base.

Clusters are shaped in groups of features. After the reph and pre-base forms
have been applied, a repha is moved towards the end of its cluster and
pre-base vowels to its start. Topographical features (isol, init, medi, fina)
follow the joining behaviour of the script: scripts which join like Arabic
use the Arabic joining machine, all others join cluster by cluster.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package otuse

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'typeshape.shaper'
func tracer() tracing.Trace {
	return tracing.Select("typeshape.shaper")
}
