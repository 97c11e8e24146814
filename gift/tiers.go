package gift

// Tier binds a universal tier key to the taste it grants.
type Tier struct {
	Key   string
	Taste Taste
}

// UniversalTiers is the Universal Taste Table in lookup order. The first tier
// whose list contains a token decides the universal taste.
var UniversalTiers = []Tier{
	{Key: "Universal_Love", Taste: Love},
	{Key: "Universal_Loved", Taste: Love},
	{Key: "Universal_Like", Taste: Like},
	{Key: "Universal_Liked", Taste: Like},
	{Key: "Universal_Neutral", Taste: Neutral},
	{Key: "Universal_Dislike", Taste: Dislike},
	{Key: "Universal_Disliked", Taste: Dislike},
	{Key: "Universal_Hate", Taste: Hate},
	{Key: "Universal_Hated", Taste: Hate},
}

// PersonalTier binds a raw record field index to a taste.
type PersonalTier struct {
	Field int
	Taste Taste
}

// PersonalTiers is the order in which a character's own lists are checked.
// Hate comes second so it beats Like, Dislike and Neutral on conflicting data.
var PersonalTiers = []PersonalTier{
	{Field: 1, Taste: Love},
	{Field: 7, Taste: Hate},
	{Field: 3, Taste: Like},
	{Field: 5, Taste: Dislike},
	{Field: 9, Taste: Neutral},
}

// IsUniversalTier reports whether key names a universal tier.
func IsUniversalTier(key string) bool {
	for _, t := range UniversalTiers {
		if t.Key == key {
			return true
		}
	}
	return false
}

// UniversalTierName returns the canonical universal tier key for a taste.
func UniversalTierName(t Taste) (string, bool) {
	switch t {
	case Love:
		return "Universal_Love", true
	case Like:
		return "Universal_Like", true
	case Neutral:
		return "Universal_Neutral", true
	case Dislike:
		return "Universal_Dislike", true
	case Hate:
		return "Universal_Hate", true
	}
	return "", false
}

// FieldIndex returns the raw record field holding the item list for t.
func FieldIndex(t Taste) (int, bool) {
	switch t {
	case Love:
		return 1, true
	case Like:
		return 3, true
	case Dislike:
		return 5, true
	case Hate:
		return 7, true
	case Neutral:
		return 9, true
	}
	return 0, false
}
