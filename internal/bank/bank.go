package bank

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"interview-service/internal/models"

	"gopkg.in/yaml.v3"
)

// DefaultDomain receives every start request whose domain key does not
// resolve against the bank.
const DefaultDomain = "backend"

// levelRounds maps a requested difficulty level to the round holding
// questions of that level. Levels outside the map (and "all") select
// every round.
var levelRounds = map[string]string{
	"easy":   "round_1_background",
	"medium": "round_2_domain",
	"hard":   "round_3_project",
}

// Round is a named ordered group of questions within a domain.
type Round struct {
	Name      string            `yaml:"name"`
	Questions []models.Question `yaml:"questions"`
}

// Domain is an ordered sequence of rounds.
type Domain struct {
	Key    string  `yaml:"key"`
	Rounds []Round `yaml:"rounds"`
}

// DomainInfo is the listing shape exposed to clients.
type DomainInfo struct {
	Key            string   `json:"key"`
	Name           string   `json:"name"`
	TotalQuestions int      `json:"total_questions"`
	Rounds         []string `json:"rounds"`
}

// Bank holds every interview domain, keyed by normalized domain key.
type Bank struct {
	domains map[string]Domain
}

// New builds a bank from a list of domains, applying question defaults.
func New(domains []Domain) *Bank {
	b := &Bank{domains: make(map[string]Domain, len(domains))}
	for _, d := range domains {
		for ri := range d.Rounds {
			for qi := range d.Rounds[ri].Questions {
				d.Rounds[ri].Questions[qi].ApplyDefaults()
			}
		}
		b.domains[NormalizeKey(d.Key)] = d
	}
	return b
}

// LoadFile reads a YAML bank file. The file fully replaces the built-in
// bank rather than merging with it.
func LoadFile(path string) (*Bank, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read question bank: %w", err)
	}
	var doc struct {
		Domains []Domain `yaml:"domains"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse question bank: %w", err)
	}
	if len(doc.Domains) == 0 {
		return nil, fmt.Errorf("question bank %s contains no domains", path)
	}
	return New(doc.Domains), nil
}

// NormalizeKey folds a client-supplied domain name onto a bank key:
// lowercase with spaces and hyphens removed.
func NormalizeKey(domain string) string {
	key := strings.ToLower(domain)
	key = strings.ReplaceAll(key, " ", "")
	key = strings.ReplaceAll(key, "-", "")
	return key
}

// Resolve returns the domain for a client-supplied name, falling back
// to the default domain when the key is unknown.
func (b *Bank) Resolve(domain string) (string, Domain) {
	key := NormalizeKey(domain)
	d, ok := b.domains[key]
	if !ok {
		key = DefaultDomain
		d = b.domains[key]
	}
	return key, d
}

// Select materializes the question sequence for a domain and level. A
// level of "all" (or one that does not resolve to a round present in
// the domain) flattens every round in order.
func (b *Bank) Select(domain, level string) (string, []models.Question) {
	key, d := b.Resolve(domain)

	if level != "" && level != "all" {
		if roundName, ok := levelRounds[level]; ok {
			for _, r := range d.Rounds {
				if r.Name == roundName {
					return key, append([]models.Question(nil), r.Questions...)
				}
			}
		}
	}

	var questions []models.Question
	for _, r := range d.Rounds {
		questions = append(questions, r.Questions...)
	}
	return key, questions
}

// Domains lists every domain with display name, question count and
// round names, sorted by key for a stable listing.
func (b *Bank) Domains() []DomainInfo {
	keys := make([]string, 0, len(b.domains))
	for k := range b.domains {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	infos := make([]DomainInfo, 0, len(keys))
	for _, k := range keys {
		d := b.domains[k]
		info := DomainInfo{Key: k, Name: displayName(k)}
		for _, r := range d.Rounds {
			info.Rounds = append(info.Rounds, r.Name)
			info.TotalQuestions += len(r.Questions)
		}
		infos = append(infos, info)
	}
	return infos
}

func displayName(key string) string {
	words := strings.Split(strings.ReplaceAll(key, "_", " "), " ")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
