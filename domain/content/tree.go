package content

import (
	"fmt"
	"reflect"
	"strings"
)

// Tree is the fully resolved landing page content. Each section is a struct of
// string fields; the json tags are the storage keys.
type Tree struct {
	Hero       HeroContent       `json:"hero"`
	Executives ExecutivesContent `json:"executives"`
	Benefits   BenefitsContent   `json:"benefits"`
	CTA        CTAContent        `json:"cta"`
	Theme      ThemeContent      `json:"theme"`
	Header     HeaderContent     `json:"header"`
	Footer     FooterContent     `json:"footer"`
}

type HeroContent struct {
	TitleMain       string `json:"title_main"`
	TitleHighlight  string `json:"title_highlight"`
	Subtitle        string `json:"subtitle"`
	Description     string `json:"description"`
	CTAPrimary      string `json:"cta_primary"`
	CTASecondary    string `json:"cta_secondary"`
	BadgeText       string `json:"badge_text"`
	TrustText       string `json:"trust_text"`
	BackgroundImage string `json:"background_image"`
}

type ExecutivesContent struct {
	SectionTitle      string `json:"section_title"`
	SectionSubtitle   string `json:"section_subtitle"`
	AlexName          string `json:"alex_name"`
	AlexRole          string `json:"alex_role"`
	AlexDescription   string `json:"alex_description"`
	AlexImage         string `json:"alex_image"`
	MorganName        string `json:"morgan_name"`
	MorganRole        string `json:"morgan_role"`
	MorganDescription string `json:"morgan_description"`
	MorganImage       string `json:"morgan_image"`
	RileyName         string `json:"riley_name"`
	RileyRole         string `json:"riley_role"`
	RileyDescription  string `json:"riley_description"`
	RileyImage        string `json:"riley_image"`
}

type BenefitsContent struct {
	SectionTitle     string `json:"section_title"`
	SectionSubtitle  string `json:"section_subtitle"`
	Item1Title       string `json:"item_1_title"`
	Item1Description string `json:"item_1_description"`
	Item2Title       string `json:"item_2_title"`
	Item2Description string `json:"item_2_description"`
	Item3Title       string `json:"item_3_title"`
	Item3Description string `json:"item_3_description"`
	Item4Title       string `json:"item_4_title"`
	Item4Description string `json:"item_4_description"`
}

type CTAContent struct {
	Title          string `json:"title"`
	Subtitle       string `json:"subtitle"`
	ButtonText     string `json:"button_text"`
	GuaranteeText  string `json:"guarantee_text"`
	SecondaryLabel string `json:"secondary_label"`
}

type ThemeContent struct {
	PrimaryColor    string `json:"primary_color"`
	SecondaryColor  string `json:"secondary_color"`
	AccentColor     string `json:"accent_color"`
	BackgroundColor string `json:"background_color"`
	TextColor       string `json:"text_color"`
	FontHeading     string `json:"font_heading"`
	FontBody        string `json:"font_body"`
}

type HeaderContent struct {
	LogoText      string `json:"logo_text"`
	LogoImage     string `json:"logo_image"`
	NavFeatures   string `json:"nav_features"`
	NavExecutives string `json:"nav_executives"`
	NavPricing    string `json:"nav_pricing"`
	LoginText     string `json:"login_text"`
	SignupText    string `json:"signup_text"`
}

type FooterContent struct {
	CompanyName     string `json:"company_name"`
	Tagline         string `json:"tagline"`
	Copyright       string `json:"copyright"`
	PrivacyLinkText string `json:"privacy_link_text"`
	TermsLinkText   string `json:"terms_link_text"`
	ContactEmail    string `json:"contact_email"`
}

type sectionSchema struct {
	name   Section
	index  int
	keys   []string
	fields map[string]int
}

type treeSchema struct {
	sections  []*sectionSchema
	bySection map[Section]*sectionSchema
}

var schema = buildSchema()

// buildSchema indexes Tree by json tag once so lookups by (section, key) do
// not walk struct tags on every request. A malformed Tree is a programming
// error and panics at init.
func buildSchema() treeSchema {
	s := treeSchema{bySection: make(map[Section]*sectionSchema)}

	t := reflect.TypeOf(Tree{})
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		name := Section(jsonName(sf))
		if sf.Type.Kind() != reflect.Struct {
			panic(fmt.Sprintf("content: section %s is not a struct", name))
		}

		sec := &sectionSchema{name: name, index: i, fields: make(map[string]int)}
		for j := 0; j < sf.Type.NumField(); j++ {
			ff := sf.Type.Field(j)
			if ff.Type.Kind() != reflect.String {
				panic(fmt.Sprintf("content: field %s.%s is not a string", name, ff.Name))
			}
			key := jsonName(ff)
			if _, dup := sec.fields[key]; dup {
				panic(fmt.Sprintf("content: duplicate key %s.%s", name, key))
			}
			sec.fields[key] = j
			sec.keys = append(sec.keys, key)
		}

		s.sections = append(s.sections, sec)
		s.bySection[name] = sec
	}
	return s
}

func jsonName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "" {
		return f.Name
	}
	return name
}

// Sections returns every section in render order.
func Sections() []Section {
	out := make([]Section, 0, len(schema.sections))
	for _, sec := range schema.sections {
		out = append(out, sec.name)
	}
	return out
}

// Fields returns the keys of a section in declaration order, or nil for an
// unknown section.
func Fields(section Section) []string {
	sec, ok := schema.bySection[section]
	if !ok {
		return nil
	}
	return append([]string(nil), sec.keys...)
}

// HasField reports whether (section, key) is part of the schema.
func HasField(section Section, key string) bool {
	sec, ok := schema.bySection[section]
	if !ok {
		return false
	}
	_, ok = sec.fields[key]
	return ok
}

// Get returns the value of (section, key).
func (t Tree) Get(section Section, key string) (string, bool) {
	v, ok := lookup(reflect.ValueOf(t), section, key)
	if !ok {
		return "", false
	}
	return v.String(), true
}

func (t *Tree) set(section Section, key, value string) bool {
	v, ok := lookup(reflect.ValueOf(t).Elem(), section, key)
	if !ok {
		return false
	}
	v.SetString(value)
	return true
}

func lookup(root reflect.Value, section Section, key string) (reflect.Value, bool) {
	sec, ok := schema.bySection[section]
	if !ok {
		return reflect.Value{}, false
	}
	idx, ok := sec.fields[key]
	if !ok {
		return reflect.Value{}, false
	}
	return root.Field(sec.index).Field(idx), true
}

// Flatten returns the tree as section -> key -> value.
func (t Tree) Flatten() map[Section]map[string]string {
	out := make(map[Section]map[string]string, len(schema.sections))
	root := reflect.ValueOf(t)
	for _, sec := range schema.sections {
		fields := make(map[string]string, len(sec.keys))
		sv := root.Field(sec.index)
		for _, key := range sec.keys {
			fields[key] = sv.Field(sec.fields[key]).String()
		}
		out[sec.name] = fields
	}
	return out
}
