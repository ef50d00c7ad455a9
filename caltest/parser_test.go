package caltest_test

import (
	"testing"

	"github.com/churchcal/calrepo/caltest"
	"github.com/churchcal/calrepo/format/jsonc"
	"github.com/churchcal/calrepo/format/text"
	"github.com/churchcal/calrepo/format/toml"
	"github.com/churchcal/calrepo/format/yaml"
)

func TestYAMLParser_Compliance(t *testing.T) {
	caltest.NewParserTester(t, yaml.NewParser(), caltest.ParserFixtures{
		Dataset: []byte(`01-17:
  title: Saint Anthony, Abbot
  rank: memorial
  symbol: anthony
02-14:
  - title: Saint Cyril, Monk
    rank: memorial
  - title: Saint Methodius, Bishop
    rank: memorial
08-10:
  title: Saint Lawrence, Deacon and Martyr
  rank: feast
  colour: red
`),
		Invalid: []byte("01-17: [unclosed\n"),
	}).TestAll()
}

func TestTOMLParser_Compliance(t *testing.T) {
	caltest.NewParserTester(t, toml.NewParser(), caltest.ParserFixtures{
		Dataset: []byte(`["01-17"]
title = "Saint Anthony, Abbot"
rank = "memorial"
symbol = "anthony"

[["02-14"]]
title = "Saint Cyril, Monk"
rank = "memorial"

[["02-14"]]
title = "Saint Methodius, Bishop"
rank = "memorial"

["08-10"]
title = "Saint Lawrence, Deacon and Martyr"
rank = "feast"
colour = "red"
`),
		Invalid: []byte("[\"01-17\"]\ntitle = \n"),
	}).TestAll()
}

func TestJSONCParser_Compliance(t *testing.T) {
	caltest.NewParserTester(t, jsonc.NewParser(), caltest.ParserFixtures{
		Dataset: []byte(`{
  // fixed-date celebrations
  "01-17": {"title": "Saint Anthony, Abbot", "rank": "memorial", "symbol": "anthony"},
  "02-14": [
    {"title": "Saint Cyril, Monk", "rank": "memorial"},
    {"title": "Saint Methodius, Bishop", "rank": "memorial"},
  ],
  "08-10": {"title": "Saint Lawrence, Deacon and Martyr", "rank": "feast", "colour": "red"},
}
`),
		Invalid: []byte(`{"01-17": {"title": }`),
	}).TestAll()
}

func TestTextParser_Compliance(t *testing.T) {
	caltest.NewParserTester(t, text.NewParser(), caltest.ParserFixtures{
		Dataset: []byte(`= 1
17 m anthony : Saint Anthony, Abbot
= 2
14 m : Saint Cyril, Monk
14 m : Saint Methodius, Bishop
= 8
10 f R : Saint Lawrence, Deacon and Martyr
`),
		Invalid:     []byte("= 1\n17 m anthony Saint Anthony\n"),
		InvalidLine: 2,
	}).TestAll()
}
