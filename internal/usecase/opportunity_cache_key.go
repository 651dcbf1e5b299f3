package usecase

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strconv"
	"strings"

	"skillsync/internal/domain/opportunity"
)

const (
	scanCachePrefix = "opportunities:scan:"
	scanLockPrefix  = "opportunities:lock:"
)

type scanCacheKeyInput struct {
	Kind   string   `json:"kind"`
	Major  string   `json:"major"`
	GPA    string   `json:"gpa"`
	Skills []string `json:"skills"`
}

func normalizeSearchValue(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	s = strings.Join(strings.Fields(s), " ")
	return s
}

// ScanCacheKey identifies a scan by kind and normalized profile. Skill order
// matters because the internship query uses the first two.
func ScanCacheKey(kind opportunity.Kind, p ScanProfile) string {
	skills := make([]string, 0, len(p.Skills))
	for _, s := range p.Skills {
		s = normalizeSearchValue(s)
		if s == "" {
			continue
		}
		skills = append(skills, s)
	}

	in := scanCacheKeyInput{
		Kind:   string(kind),
		Major:  normalizeSearchValue(p.Major),
		GPA:    strconv.FormatFloat(p.GPA, 'f', 2, 64),
		Skills: skills,
	}

	b, _ := json.Marshal(in)
	sum := sha256.Sum256(b)
	return scanCachePrefix + hex.EncodeToString(sum[:])
}

func ScanLockKey(cacheKey string) string {
	cacheKey = strings.TrimSpace(cacheKey)
	return scanLockPrefix + strings.TrimPrefix(cacheKey, scanCachePrefix)
}
