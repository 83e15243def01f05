package service

import (
	"fmt"
	"regexp"
	"sort"

	"github.com/goserg/campusevents/auth/users"

	mapset "github.com/deckarep/golang-set/v2"
)

const anyone = "*"

type rule struct {
	name     string
	path     *regexp.Regexp
	methods  mapset.Set[string]
	allow    mapset.Set[string]
	redirect string
	notice   string
}

// AccessError is returned by Authorize. It unwraps to ErrNotAuthorized for
// guests and to ErrForbidden for signed in users lacking the role.
type AccessError struct {
	Err      error
	Rule     string
	Redirect string
	Notice   string
}

func (e *AccessError) Error() string {
	return fmt.Sprintf("rule %q: %v", e.Rule, e.Err)
}

func (e *AccessError) Unwrap() error {
	return e.Err
}

func compileRules(cfg []Rule) ([]rule, error) {
	sorted := make([]Rule, len(cfg))
	copy(sorted, cfg)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Order < sorted[j].Order
	})
	rules := make([]rule, 0, len(sorted))
	for _, r := range sorted {
		// Rule paths ignore case so a differently cased URL cannot skip a rule.
		re, err := regexp.Compile("(?i)" + r.Path)
		if err != nil {
			return nil, fmt.Errorf("rule %q: %w", r.Name, err)
		}
		rules = append(rules, rule{
			name:     r.Name,
			path:     re,
			methods:  mapset.NewSet[string](r.Method...),
			allow:    mapset.NewSet[string](r.Allow...),
			redirect: r.Redirect,
			notice:   r.Notice,
		})
	}
	return rules, nil
}

// Authorize checks the first rule matching method and path. Paths without a
// matching rule are forbidden.
func (s *Service) Authorize(user users.User, method string, path string) error {
	for _, r := range s.rules {
		if !r.path.MatchString(path) {
			continue
		}
		if !r.methods.Contains(anyone) && !r.methods.Contains(method) {
			continue
		}
		if r.allow.Contains(anyone) || r.allow.Contains(string(user.EffectiveRole())) {
			return nil
		}
		err := ErrForbidden
		if !user.IsAuthenticated() {
			err = ErrNotAuthorized
		}
		return &AccessError{
			Err:      err,
			Rule:     r.name,
			Redirect: r.redirect,
			Notice:   r.notice,
		}
	}
	return &AccessError{Err: ErrForbidden, Rule: "none", Redirect: "/"}
}
