package card

import (
	"regexp"
	"strings"
)

// Keyword identifies one of the standard MTG keyword abilities.
type Keyword int

const (
	Flying Keyword = iota
	Trample
	Haste
	Lifelink
	Deathtouch
	Menace
	Vigilance
	FirstStrike
	DoubleStrike
	Reach
	Ward
	Protection
	Islandwalk
	Swampwalk
	Forestwalk
	Mountainwalk
	Plainswalk
	Flash
	Hexproof
	Shroud
	Indestructible
	Defender
	Flanking
	Banding
	Shadow
	Fear
	Intimidate
	Horsemanship
	Infect
	Wither
	Undying
	Persist
	Prowess
	Convoke
	Delve
	Affinity
	Cascade
	Flashback
	Kicker
	Cycling
	Morph
	Megamorph
	Unearth
	Scry
	Explore
	Exploit
	Embalm
	Eternalize
	Mentor
	Riot
	Adapt
	Amass
	Boast
	Afflict
	Rampage
	Bushido
	Splice
	Suspend
	Storm
	Madness
	Replicate
	Overload
	Escalate
	Entwine
	Buyback
	Champion
	Epic
	Soulbond
	Bloodthirst
	Extort
	Dash
	Exert
	Afterlife
	Crew
	Fabricate
	Ascend
	Addendum
	Spectacle
	JumpStart
	Escape
	Mutate
	Foretell
	Disturb
	Daybound
	Nightbound
	Training
	Blitz
	Backup
	Craft
	Changeling
	Landwalk // generic marker set alongside a specific *walk keyword
	SplitSecond
	keywordCount
)

// KeywordSet is a fixed-width bitset over Keyword values, wide enough for
// the full evergreen-plus-mechanic vocabulary without growing per card.
type KeywordSet [2]uint64

func (ks KeywordSet) word(k Keyword) (idx int, bit uint64) {
	return int(k) / 64, uint64(1) << (uint(k) % 64)
}

// Set marks k present in the set and returns the updated set (value semantics).
func (ks KeywordSet) Set(k Keyword) KeywordSet {
	idx, bit := ks.word(k)
	ks[idx] |= bit
	return ks
}

// Clear marks k absent in the set and returns the updated set.
func (ks KeywordSet) Clear(k Keyword) KeywordSet {
	idx, bit := ks.word(k)
	ks[idx] &^= bit
	return ks
}

// Has reports whether k is present in the set.
func (ks KeywordSet) Has(k Keyword) bool {
	idx, bit := ks.word(k)
	return ks[idx]&bit != 0
}

// Union returns the bitwise union of two sets.
func (ks KeywordSet) Union(other KeywordSet) KeywordSet {
	return KeywordSet{ks[0] | other[0], ks[1] | other[1]}
}

// Diff returns ks with every keyword present in remove cleared.
func (ks KeywordSet) Diff(remove KeywordSet) KeywordSet {
	return KeywordSet{ks[0] &^ remove[0], ks[1] &^ remove[1]}
}

type keywordPattern struct {
	regex   *regexp.Regexp
	keyword Keyword
	// arg, if non-nil, extracts a parameter (e.g. the N in "ward 2") from
	// the match for storage in Card.KeywordArgs.
	arg func(match []string) string
}

var keywordPatterns = buildKeywordPatterns()

func buildKeywordPatterns() []keywordPattern {
	simple := map[string]Keyword{
		"flying": Flying, "trample": Trample, "haste": Haste, "lifelink": Lifelink,
		"deathtouch": Deathtouch, "menace": Menace, "vigilance": Vigilance,
		"first strike": FirstStrike, "double strike": DoubleStrike, "reach": Reach,
		"flash": Flash, "hexproof": Hexproof, "shroud": Shroud, "indestructible": Indestructible,
		"defender": Defender, "flanking": Flanking, "banding": Banding, "shadow": Shadow,
		"fear": Fear, "intimidate": Intimidate, "horsemanship": Horsemanship, "infect": Infect,
		"wither": Wither, "undying": Undying, "persist": Persist, "prowess": Prowess,
		"convoke": Convoke, "delve": Delve, "affinity": Affinity, "cascade": Cascade,
		"flashback": Flashback, "cycling": Cycling, "megamorph": Megamorph, "morph": Morph,
		"unearth": Unearth, "explore": Explore, "exploit": Exploit, "embalm": Embalm,
		"eternalize": Eternalize, "mentor": Mentor, "riot": Riot, "amass": Amass,
		"boast": Boast, "afflict": Afflict, "rampage": Rampage, "bushido": Bushido,
		"splice": Splice, "suspend": Suspend, "storm": Storm, "madness": Madness,
		"replicate": Replicate, "overload": Overload, "escalate": Escalate,
		"entwine": Entwine, "buyback": Buyback, "champion": Champion, "epic": Epic,
		"soulbond": Soulbond, "bloodthirst": Bloodthirst, "extort": Extort, "dash": Dash,
		"exert": Exert, "afterlife": Afterlife, "crew": Crew, "fabricate": Fabricate,
		"ascend": Ascend, "addendum": Addendum, "spectacle": Spectacle,
		"jump-start": JumpStart, "escape": Escape, "mutate": Mutate, "foretell": Foretell,
		"disturb": Disturb, "daybound": Daybound, "nightbound": Nightbound,
		"training": Training, "blitz": Blitz, "backup": Backup, "craft": Craft,
		"changeling": Changeling, "kicker": Kicker, "adapt": Adapt,
		"split second": SplitSecond,
	}

	var patterns []keywordPattern
	for text, kw := range simple {
		patterns = append(patterns, keywordPattern{
			regex:   regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(text) + `\b`),
			keyword: kw,
		})
	}

	// Parameterized keywords carry an argument beyond presence.
	patterns = append(patterns,
		keywordPattern{
			regex:   regexp.MustCompile(`(?i)\bward\s*\{?(\d+)\}?`),
			keyword: Ward,
			arg:     func(m []string) string { return m[1] },
		},
		keywordPattern{
			regex:   regexp.MustCompile(`(?i)\bward\s*—\s*([^.\n]+)`),
			keyword: Ward,
			arg:     func(m []string) string { return strings.TrimSpace(m[1]) },
		},
		keywordPattern{
			regex:   regexp.MustCompile(`(?i)\bprotection from ([a-z]+(?: or [a-z]+)*)`),
			keyword: Protection,
			arg:     func(m []string) string { return m[1] },
		},
		keywordPattern{
			regex:   regexp.MustCompile(`(?i)\bscry (\d+)`),
			keyword: Scry,
			arg:     func(m []string) string { return m[1] },
		},
		keywordPattern{
			regex:   regexp.MustCompile(`(?i)\bislandwalk\b`),
			keyword: Islandwalk,
		},
		keywordPattern{
			regex:   regexp.MustCompile(`(?i)\bswampwalk\b`),
			keyword: Swampwalk,
		},
		keywordPattern{
			regex:   regexp.MustCompile(`(?i)\bforestwalk\b`),
			keyword: Forestwalk,
		},
		keywordPattern{
			regex:   regexp.MustCompile(`(?i)\bmountainwalk\b`),
			keyword: Mountainwalk,
		},
		keywordPattern{
			regex:   regexp.MustCompile(`(?i)\bplainswalk\b`),
			keyword: Plainswalk,
		},
	)
	return patterns
}

// ExtractKeywords scans oracle text and returns the keyword bitset present,
// plus any parameterized arguments (ward N, protection from X, scry N, ...).
func ExtractKeywords(oracleText string) (KeywordSet, map[Keyword][]string) {
	var set KeywordSet
	args := make(map[Keyword][]string)

	for _, p := range keywordPatterns {
		matches := p.regex.FindAllStringSubmatch(oracleText, -1)
		if matches == nil {
			continue
		}
		set = set.Set(p.keyword)
		if p.keyword == Islandwalk || p.keyword == Swampwalk || p.keyword == Forestwalk ||
			p.keyword == Mountainwalk || p.keyword == Plainswalk {
			set = set.Set(Landwalk)
		}
		if p.arg == nil {
			continue
		}
		for _, m := range matches {
			args[p.keyword] = append(args[p.keyword], p.arg(m))
		}
	}
	return set, args
}
