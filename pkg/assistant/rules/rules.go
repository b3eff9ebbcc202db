// Package rules holds the canonical keyword and phrase lists used by the
// relevance filter, the intent guard and the contract type detector.
package rules

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// ContractType maps trigger phrases to a display label.
type ContractType struct {
	Label    string   `yaml:"label"`
	Keywords []string `yaml:"keywords"`
}

// Rules is the full rule sheet. Lists are matched case-insensitively.
type Rules struct {
	SmallTalkPhrases         []string       `yaml:"small_talk_phrases"`
	LegalKeywords            []string       `yaml:"legal_keywords"`
	DocumentQuestionPatterns []string       `yaml:"document_question_patterns"` // regular expressions
	ModificationVerbs        []string       `yaml:"modification_verbs"`
	DocumentContextPhrases   []string       `yaml:"document_context_phrases"`
	DraftingKeywords         []string       `yaml:"drafting_keywords"`
	QuestionKeywords         []string       `yaml:"question_keywords"`
	AnalysisKeywords         []string       `yaml:"analysis_keywords"`
	CoarseKeywords           []string       `yaml:"coarse_keywords"`
	ContractTypes            []ContractType `yaml:"contract_types"`

	questionPatterns []*regexp.Regexp
}

// Default returns the built-in rule sheet.
func Default() *Rules {
	r := &Rules{
		SmallTalkPhrases: []string{
			"hello", "hi", "hey", "how are you", "good morning", "good afternoon", "good evening",
			"good night", "what's up", "whats up", "thank you", "thanks", "bye", "goodbye",
			"tell me a joke", "joke", "who are you", "what is your name", "how is it going",
			"weather", "sing", "song", "poem", "recipe", "movie", "football", "cricket",
		},
		LegalKeywords: []string{
			"contract", "agreement", "clause", "lease", "rent", "rental", "tenant", "landlord",
			"nda", "non-disclosure", "confidentiality", "employment", "employer", "employee",
			"partnership", "deed", "indemnity", "liability", "jurisdiction", "arbitration",
			"termination", "legal", "law", "contract act", "covenant", "warranty", "license",
			"licence", "sale", "purchase", "loan", "mortgage", "franchise", "vendor", "supplier",
			"consultancy", "non-compete", "terms and conditions", "power of attorney", "affidavit",
			"court", "dispute", "breach", "damages", "signatory", "stamp duty", "memorandum", "mou",
			"governing law", "force majeure", "intellectual property", "copyright", "trademark",
			"shareholder", "joint venture", "notarize", "notary", "security deposit", "lessor", "lessee",
		},
		DocumentQuestionPatterns: []string{
			`^(what|who|when|where|which|how|why|is|are|does|do|can|will|should)\b.*(\b(this|the|my|our|that)\s+(contract|agreement|document|draft|deed|clause|section|provision|paragraph|schedule|annexure)\b|\b(clauses?|sections?|provisions?|notice period|lock-in period|payment terms|obligations|penalty clause|signatories|witnesses)\b)`,
			`^(is|are|what|which|anything)\b.*\b(missing|left out|not included|not covered)\b`,
			`\b(explain|summari[sz]e|clarify)\b.*(\b(this|the|that|above)\s+(contract|agreement|document|draft|clause|section|terms?|provision)\b|\b(clauses?|sections?|provisions?)\b)`,
		},
		ModificationVerbs: []string{
			"add", "remove", "delete", "change", "modify", "update", "replace", "insert", "include",
			"amend", "revise", "edit", "rewrite", "increase", "decrease", "extend", "shorten",
		},
		DocumentContextPhrases: []string{
			"clause", "section", "paragraph", "the contract", "this contract", "the agreement",
			"this agreement", "the document", "the draft", "term", "terms", "schedule", "annexure",
		},
		DraftingKeywords: []string{
			"draft", "create", "make", "prepare", "write", "generate", "compose", "formulate",
			"new contract", "new agreement", "need a", "need an", "want a", "want an",
		},
		QuestionKeywords: []string{
			"what", "who", "when", "where", "which", "how", "why", "is there", "are there",
			"does", "missing", "explain",
		},
		AnalysisKeywords: []string{
			"analyze", "analyse", "analysis", "review", "risks", "risk", "evaluate", "assess",
			"audit", "check", "loopholes", "red flags",
		},
		CoarseKeywords: []string{
			"contract", "agreement", "legal", "law", "clause", "draft", "deed", "lease", "nda",
		},
		ContractTypes: []ContractType{
			{Label: "Non-Disclosure Agreement", Keywords: []string{"nda", "non-disclosure", "confidentiality agreement"}},
			{Label: "Lease Agreement", Keywords: []string{"lease", "rental", "rent agreement", "tenancy"}},
			{Label: "Employment Agreement", Keywords: []string{"employment", "offer letter", "employee agreement"}},
			{Label: "Freelance Agreement", Keywords: []string{"freelance", "freelancer"}},
			{Label: "Consultancy Agreement", Keywords: []string{"consultancy", "consulting", "consultant"}},
			{Label: "Service Agreement", Keywords: []string{"service agreement", "services agreement", "service contract"}},
			{Label: "Sale Agreement", Keywords: []string{"sale deed", "sale agreement", "purchase agreement", "sale of"}},
			{Label: "Partnership Deed", Keywords: []string{"partnership"}},
			{Label: "Joint Venture Agreement", Keywords: []string{"joint venture"}},
			{Label: "Loan Agreement", Keywords: []string{"loan", "lending", "borrow"}},
			{Label: "Franchise Agreement", Keywords: []string{"franchise"}},
			{Label: "License Agreement", Keywords: []string{"license", "licence", "licensing"}},
			{Label: "Power of Attorney", Keywords: []string{"power of attorney"}},
			{Label: "Memorandum of Understanding", Keywords: []string{"mou", "memorandum of understanding"}},
		},
	}
	if err := r.compile(); err != nil {
		// Built-in patterns are constants; failing here is a programming error.
		panic(err)
	}
	return r
}

// LoadFile reads a YAML rule file and overlays every non-empty list on top of the defaults.
func LoadFile(path string) (*Rules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules file: %w", err)
	}

	var override Rules
	if err := yaml.Unmarshal(data, &override); err != nil {
		return nil, fmt.Errorf("parse rules file: %w", err)
	}

	r := Default()
	overlay(&r.SmallTalkPhrases, override.SmallTalkPhrases)
	overlay(&r.LegalKeywords, override.LegalKeywords)
	overlay(&r.DocumentQuestionPatterns, override.DocumentQuestionPatterns)
	overlay(&r.ModificationVerbs, override.ModificationVerbs)
	overlay(&r.DocumentContextPhrases, override.DocumentContextPhrases)
	overlay(&r.DraftingKeywords, override.DraftingKeywords)
	overlay(&r.QuestionKeywords, override.QuestionKeywords)
	overlay(&r.AnalysisKeywords, override.AnalysisKeywords)
	overlay(&r.CoarseKeywords, override.CoarseKeywords)
	if len(override.ContractTypes) > 0 {
		r.ContractTypes = override.ContractTypes
	}

	if err := r.compile(); err != nil {
		return nil, err
	}
	return r, nil
}

func overlay(dst *[]string, src []string) {
	if len(src) > 0 {
		*dst = src
	}
}

func (r *Rules) compile() error {
	r.questionPatterns = r.questionPatterns[:0]
	for _, p := range r.DocumentQuestionPatterns {
		re, err := regexp.Compile("(?i)" + p)
		if err != nil {
			return fmt.Errorf("invalid document question pattern %q: %w", p, err)
		}
		r.questionPatterns = append(r.questionPatterns, re)
	}
	return nil
}

func (r *Rules) IsSmallTalk(query string) bool {
	return ContainsAnyTerm(query, r.SmallTalkPhrases)
}

func (r *Rules) HasLegalKeyword(query string) bool {
	return ContainsAnyTerm(query, r.LegalKeywords)
}

func (r *Rules) MatchesDocumentQuestion(query string) bool {
	q := strings.TrimSpace(query)
	for _, re := range r.questionPatterns {
		if re.MatchString(q) {
			return true
		}
	}
	return false
}

func (r *Rules) IsModificationRequest(query string) bool {
	return ContainsAnyTerm(query, r.ModificationVerbs) && ContainsAnyTerm(query, r.DocumentContextPhrases)
}

func (r *Rules) HasDraftingKeyword(query string) bool {
	return ContainsAnyTerm(query, r.DraftingKeywords)
}

// HasCoarseKeyword is a loose substring check used when nothing better is available.
func (r *Rules) HasCoarseKeyword(query string) bool {
	lower := strings.ToLower(query)
	for _, k := range r.CoarseKeywords {
		if strings.Contains(lower, strings.ToLower(k)) {
			return true
		}
	}
	return false
}

// DetectContractType returns the first contract type whose keywords appear in text.
func (r *Rules) DetectContractType(text string) (string, bool) {
	for _, ct := range r.ContractTypes {
		if ContainsAnyTerm(text, ct.Keywords) {
			return ct.Label, true
		}
	}
	return "", false
}

// ContainsAnyTerm reports whether any term occurs in text as a whole word or phrase.
// A trailing plural "s" on the text side still matches ("contracts" matches "contract").
func ContainsAnyTerm(text string, terms []string) bool {
	lower := strings.ToLower(text)
	for _, term := range terms {
		if containsTerm(lower, strings.ToLower(term)) {
			return true
		}
	}
	return false
}

func containsTerm(text, term string) bool {
	if term == "" {
		return false
	}
	from := 0
	for {
		idx := strings.Index(text[from:], term)
		if idx < 0 {
			return false
		}
		start := from + idx
		end := start + len(term)

		if boundaryBefore(text, start) {
			if boundaryAfter(text, end) {
				return true
			}
			if end < len(text) && text[end] == 's' && boundaryAfter(text, end+1) {
				return true
			}
		}
		from = start + 1
	}
}

func boundaryBefore(text string, pos int) bool {
	return pos == 0 || !isWordByte(text[pos-1])
}

func boundaryAfter(text string, pos int) bool {
	return pos >= len(text) || !isWordByte(text[pos])
}

func isWordByte(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}
