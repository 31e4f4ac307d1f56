package catalog

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/Georgesib05/comming-soon/services/storefront/internal/domain"
)

// Group is a family of mutually exclusive sort options.
type Group string

const (
	GroupDate  Group = "date"
	GroupPrice Group = "price"
	GroupName  Group = "name"
)

// Option is a single sort order.
type Option string

const (
	Newest       Option = "newest"
	Oldest       Option = "oldest"
	PriceLowHigh Option = "price-low-high"
	PriceHighLow Option = "price-high-low"
	NameAZ       Option = "name-a-z"
	NameZA       Option = "name-z-a"
)

// ErrUnknownOption is matched by errors.Is for every UnknownOptionError.
var ErrUnknownOption = errors.New("unknown sort option")

// UnknownOptionError is returned by ParseSelection for an unrecognised option.
type UnknownOptionError struct {
	Option string
}

func (e *UnknownOptionError) Error() string {
	return fmt.Sprintf("unknown sort option %q", e.Option)
}

func (e *UnknownOptionError) Is(target error) bool {
	return target == ErrUnknownOption
}

// OptionInfo describes an option for clients building a sort menu.
type OptionInfo struct {
	Value Option `json:"value"`
	Label string `json:"label"`
}

// GroupInfo lists the options of one group.
type GroupInfo struct {
	Group   Group        `json:"group"`
	Options []OptionInfo `json:"options"`
}

var groups = []GroupInfo{
	{Group: GroupDate, Options: []OptionInfo{
		{Value: Newest, Label: "Newest to Oldest"},
		{Value: Oldest, Label: "Oldest to Newest"},
	}},
	{Group: GroupPrice, Options: []OptionInfo{
		{Value: PriceLowHigh, Label: "Price: Low to High"},
		{Value: PriceHighLow, Label: "Price: High to Low"},
	}},
	{Group: GroupName, Options: []OptionInfo{
		{Value: NameAZ, Label: "Name: A to Z"},
		{Value: NameZA, Label: "Name: Z to A"},
	}},
}

// Groups returns the sort menu.
func Groups() []GroupInfo {
	out := make([]GroupInfo, len(groups))
	for i, g := range groups {
		out[i] = GroupInfo{Group: g.Group, Options: slices.Clone(g.Options)}
	}
	return out
}

// Group returns the group o belongs to, or "" for an unknown option.
func (o Option) Group() Group {
	for _, g := range groups {
		for _, info := range g.Options {
			if info.Value == o {
				return g.Group
			}
		}
	}
	return ""
}

// Valid reports whether o is a known option.
func (o Option) Valid() bool {
	return o.Group() != ""
}

// Selection is the ordered list of active sort options. At most one option
// per group is active, and later entries take precedence over earlier ones.
type Selection []Option

// Toggle returns the selection after the user clicks o. An active option is
// switched off. Otherwise any option of the same group is dropped and o is
// appended. Unknown options leave the selection unchanged.
func (s Selection) Toggle(o Option) Selection {
	g := o.Group()
	if g == "" {
		return slices.Clone(s)
	}
	if s.Active(o) {
		return slices.DeleteFunc(slices.Clone(s), func(x Option) bool { return x == o })
	}
	out := slices.DeleteFunc(slices.Clone(s), func(x Option) bool { return x.Group() == g })
	return append(out, o)
}

// Active reports whether o is in the selection.
func (s Selection) Active(o Option) bool {
	return slices.Contains(s, o)
}

// Strings returns the options as plain strings.
func (s Selection) Strings() []string {
	out := make([]string, len(s))
	for i, o := range s {
		out[i] = string(o)
	}
	return out
}

// ParseSelection replays raw as a sequence of toggles starting from an empty
// selection. Comma separated values are split, blanks are skipped.
func ParseSelection(raw []string) (Selection, error) {
	sel := Selection{}
	for _, item := range raw {
		for _, part := range strings.Split(item, ",") {
			part = strings.ToLower(strings.TrimSpace(part))
			if part == "" {
				continue
			}
			o := Option(part)
			if !o.Valid() {
				return nil, &UnknownOptionError{Option: part}
			}
			sel = sel.Toggle(o)
		}
	}
	return sel, nil
}

// Filter narrows the catalog. Empty fields match everything.
type Filter struct {
	Category string
	Search   string
}

func (f Filter) match(p domain.Product) bool {
	if f.Category != "" && p.Category != f.Category {
		return false
	}
	if q := strings.TrimSpace(f.Search); q != "" {
		return strings.Contains(strings.ToLower(p.Name), strings.ToLower(q))
	}
	return true
}

// Apply filters products and sorts them by each option of sel in turn with a
// stable sort, so the last option decides the primary order. The input slice
// is not modified.
func Apply(products []domain.Product, f Filter, sel Selection) []domain.Product {
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if f.match(p) {
			out = append(out, p)
		}
	}

	var coll *collate.Collator
	for _, o := range sel {
		switch o {
		case Newest:
			slices.SortStableFunc(out, func(a, b domain.Product) int { return b.CreatedAt.Compare(a.CreatedAt) })
		case Oldest:
			slices.SortStableFunc(out, func(a, b domain.Product) int { return a.CreatedAt.Compare(b.CreatedAt) })
		case PriceLowHigh:
			slices.SortStableFunc(out, func(a, b domain.Product) int { return a.Price.Cmp(b.Price) })
		case PriceHighLow:
			slices.SortStableFunc(out, func(a, b domain.Product) int { return b.Price.Cmp(a.Price) })
		case NameAZ, NameZA:
			if coll == nil {
				coll = collate.New(language.English)
			}
			dir := 1
			if o == NameZA {
				dir = -1
			}
			slices.SortStableFunc(out, func(a, b domain.Product) int {
				return dir * coll.CompareString(a.Name, b.Name)
			})
		}
	}
	return out
}

// Categories returns the distinct categories in catalog order.
func Categories(products []domain.Product) []string {
	seen := make(map[string]struct{}, len(products))
	out := []string{}
	for _, p := range products {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		out = append(out, p.Category)
	}
	return out
}
