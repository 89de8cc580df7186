package screens

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed legal.yaml
var legalYAML []byte

type Section struct {
	Heading string   `yaml:"heading"`
	Text    string   `yaml:"text"`
	Items   []string `yaml:"items"`
}

// Document is a static page shown from settings.
type Document struct {
	Title    string    `yaml:"title"`
	Intro    []string  `yaml:"intro"`
	Sections []Section `yaml:"sections"`
}

type legalDocs struct {
	Privacy Document `yaml:"privacy"`
	Terms   Document `yaml:"terms"`
}

var loadLegal = sync.OnceValues(func() (legalDocs, error) {
	var docs legalDocs
	if err := yaml.Unmarshal(legalYAML, &docs); err != nil {
		return legalDocs{}, fmt.Errorf("parse legal documents: %w", err)
	}
	return docs, nil
})

func PrivacyPolicy() (Document, error) {
	docs, err := loadLegal()
	return docs.Privacy, err
}

func TermsConditions() (Document, error) {
	docs, err := loadLegal()
	return docs.Terms, err
}
