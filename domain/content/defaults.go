package content

import (
	"fmt"
	"strings"
)

// defaultTree backs every field the landing page renders. A field added to
// Tree without a default here fails package init.
var defaultTree = Tree{
	Hero: HeroContent{
		TitleMain:       "AI Boss Brainz",
		TitleHighlight:  "Your Executive Team, On Demand",
		Subtitle:        "Get C-suite level advice from AI executives trained on decades of business leadership.",
		Description:     "Strategy, finance and growth decisions reviewed by a virtual boardroom that never sleeps.",
		CTAPrimary:      "Start Free Trial",
		CTASecondary:    "Meet the Executives",
		BadgeText:       "New: Voice conversations with your AI board",
		TrustText:       "Trusted by 2,000+ founders and business owners",
		BackgroundImage: "/images/hero-background.jpg",
	},
	Executives: ExecutivesContent{
		SectionTitle:      "Meet Your AI Executive Team",
		SectionSubtitle:   "Each executive brings a distinct perspective to your toughest decisions.",
		AlexName:          "Alex",
		AlexRole:          "Chief Strategy Officer",
		AlexDescription:   "Turns ambitious goals into focused quarterly plans and keeps the whole company pointed the same way.",
		AlexImage:         "/images/executives/alex.png",
		MorganName:        "Morgan",
		MorganRole:        "Chief Financial Officer",
		MorganDescription: "Stress-tests your numbers, models cash runway and spots margin leaks before they become problems.",
		MorganImage:       "/images/executives/morgan.png",
		RileyName:         "Riley",
		RileyRole:         "Chief Marketing Officer",
		RileyDescription:  "Sharpens positioning, plans campaigns and finds the channels where your customers already are.",
		RileyImage:        "/images/executives/riley.png",
	},
	Benefits: BenefitsContent{
		SectionTitle:     "Why Leaders Choose AI Boss Brainz",
		SectionSubtitle:  "Executive-grade thinking without the executive payroll.",
		Item1Title:       "Available 24/7",
		Item1Description: "Get a second opinion at 2am before the big meeting, not two weeks later.",
		Item2Title:       "Decades of Experience",
		Item2Description: "Advice grounded in proven frameworks from thousands of real business cases.",
		Item3Title:       "Fraction of the Cost",
		Item3Description: "A full advisory board for less than a single hour of consulting time.",
		Item4Title:       "Private and Secure",
		Item4Description: "Your conversations stay confidential and are never used to train public models.",
	},
	CTA: CTAContent{
		Title:          "Ready to Build Your Boardroom?",
		Subtitle:       "Join the leaders making faster, better decisions with AI executives.",
		ButtonText:     "Get Started Today",
		GuaranteeText:  "14-day free trial. No credit card required.",
		SecondaryLabel: "Talk to sales",
	},
	Theme: ThemeContent{
		PrimaryColor:    "#1E3A8A",
		SecondaryColor:  "#0F172A",
		AccentColor:     "#F59E0B",
		BackgroundColor: "#FFFFFF",
		TextColor:       "#111827",
		FontHeading:     "Playfair Display",
		FontBody:        "Inter",
	},
	Header: HeaderContent{
		LogoText:      "AI Boss Brainz",
		LogoImage:     "/images/logo.svg",
		NavFeatures:   "Features",
		NavExecutives: "Executives",
		NavPricing:    "Pricing",
		LoginText:     "Log In",
		SignupText:    "Sign Up",
	},
	Footer: FooterContent{
		CompanyName:     "AI Boss Brainz",
		Tagline:         "Executive intelligence for every business.",
		Copyright:       "© AI Boss Brainz. All rights reserved.",
		PrivacyLinkText: "Privacy Policy",
		TermsLinkText:   "Terms of Service",
		ContactEmail:    "support@aibossbrainz.com",
	},
}

var declaredSections = []Section{
	SectionHero,
	SectionExecutives,
	SectionBenefits,
	SectionCTA,
	SectionTheme,
	SectionHeader,
	SectionFooter,
}

func init() {
	if err := checkComplete(defaultTree); err != nil {
		panic(err)
	}
	for _, s := range declaredSections {
		if !s.Valid() {
			panic(fmt.Sprintf("content: section constant %q has no Tree field", s))
		}
	}
	if len(declaredSections) != len(schema.sections) {
		panic("content: Tree declares a section without a Section constant")
	}
}

// DefaultTree returns a copy of the built-in content.
func DefaultTree() Tree {
	return defaultTree
}

// DefaultValue returns the built-in value for (section, key).
func DefaultValue(section Section, key string) (string, bool) {
	return defaultTree.Get(section, key)
}

// checkComplete returns an error naming the first blank field of t.
func checkComplete(t Tree) error {
	for _, sec := range Sections() {
		for _, key := range Fields(sec) {
			v, _ := t.Get(sec, key)
			if strings.TrimSpace(v) == "" {
				return fmt.Errorf("content: %s.%s has no value", sec, key)
			}
		}
	}
	return nil
}
