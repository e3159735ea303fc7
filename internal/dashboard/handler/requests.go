package handler

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"enrolsight/internal/access"
	"enrolsight/internal/analytics"
	"enrolsight/internal/dashboard"
	dErrors "enrolsight/pkg/domain-errors"
	"enrolsight/pkg/platform/httputil"
	"enrolsight/pkg/requestcontext"
)

const maxParamLength = 100

// identity reads the caller set by the auth middleware. It writes a 401 and
// returns false when the request is unauthenticated.
func (h *Handler) identity(w http.ResponseWriter, r *http.Request) (access.Identity, bool) {
	ctx := r.Context()
	userID := requestcontext.UserID(ctx)
	if userID.IsNil() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return access.Identity{}, false
	}
	return access.Identity{
		ID:   userID,
		Name: requestcontext.UserName(ctx),
		Role: access.ParseRole(requestcontext.Role(ctx)),
	}, true
}

// parseCriteria reads year, period and region. Year must be a positive
// integer when present.
func parseCriteria(q url.Values) (analytics.Criteria, error) {
	var c analytics.Criteria
	for _, name := range []string{"year", "period", "region"} {
		if len(q.Get(name)) > maxParamLength {
			return c, dErrors.New(dErrors.CodeValidation, name+" is too long")
		}
	}
	if raw := strings.TrimSpace(q.Get("year")); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil || year <= 0 {
			return c, dErrors.New(dErrors.CodeValidation, "year must be a positive integer")
		}
		c.Year = year
	}
	c.Period = strings.TrimSpace(q.Get("period"))
	c.Region = strings.TrimSpace(q.Get("region"))
	return c, nil
}

func parseDashboardRequest(q url.Values) (dashboard.Request, error) {
	criteria, err := parseCriteria(q)
	if err != nil {
		return dashboard.Request{}, err
	}
	top, err := boundedIntParam(q, "top", 0, dashboard.MaxTop)
	if err != nil {
		return dashboard.Request{}, err
	}
	tab := q.Get("tab")
	if len(tab) > maxParamLength {
		return dashboard.Request{}, dErrors.New(dErrors.CodeValidation, "tab is too long")
	}
	if tab == "" {
		tab = string(access.TabOverview)
	}
	return dashboard.Request{
		Tab:      access.ParseTab(tab),
		Criteria: criteria,
		CompareA: strings.TrimSpace(q.Get("compare_a")),
		CompareB: strings.TrimSpace(q.Get("compare_b")),
		Top:      top,
	}, nil
}

// intParam parses a non-negative integer query parameter.
func intParam(q url.Values, name string, def int) (int, error) {
	raw := strings.TrimSpace(q.Get(name))
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, dErrors.New(dErrors.CodeValidation, name+" must be a non-negative integer")
	}
	return n, nil
}

// boundedIntParam is intParam with an inclusive upper bound.
func boundedIntParam(q url.Values, name string, def, maxValue int) (int, error) {
	n, err := intParam(q, name, def)
	if err != nil {
		return 0, err
	}
	if n > maxValue {
		return 0, dErrors.New(dErrors.CodeValidation, name+" must be at most "+strconv.Itoa(maxValue))
	}
	return n, nil
}

func measureParam(q url.Values, name string, def analytics.Measure) (analytics.Measure, error) {
	raw := strings.TrimSpace(q.Get(name))
	if raw == "" {
		return def, nil
	}
	m, err := analytics.ParseMeasure(raw)
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeValidation, name+" is not a known measure")
	}
	return m, nil
}
