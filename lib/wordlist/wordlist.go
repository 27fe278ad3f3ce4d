package wordlist

import (
	"io/ioutil"

	"gopkg.in/yaml.v2"
)

// Lists holds the fixed sentiment vocabularies behind the optional
// sentiment_breakdown metadata. The scan is a keyword membership check over
// the input text and is independent of whatever the model returned.
type Lists struct {
	Positive     map[string]bool `yaml:"positive"`
	Negative     map[string]bool `yaml:"negative"`
	Intensifiers map[string]bool `yaml:"intensifiers"`
}

func Load(path string) (*Lists, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, err
	}

	l := Lists{}
	if err := yaml.Unmarshal(data, &l); err != nil {
		return nil, err
	}

	return &l, nil
}

// Default returns the built-in vocabularies, used when no wordlist file is
// configured.
func Default() *Lists {
	return &Lists{
		Positive: map[string]bool{
			"good": true, "great": true, "love": true, "excellent": true,
			"amazing": true, "happy": true, "wonderful": true, "best": true,
			"fantastic": true, "perfect": true, "awesome": true, "enjoy": true,
		},
		Negative: map[string]bool{
			"bad": true, "terrible": true, "hate": true, "awful": true,
			"horrible": true, "sad": true, "worst": true, "poor": true,
			"disappointing": true, "broken": true, "useless": true, "annoying": true,
		},
		Intensifiers: map[string]bool{
			"very": true, "really": true, "extremely": true, "absolutely": true,
			"totally": true, "completely": true, "so": true, "incredibly": true,
		},
	}
}
