package httpapi

import (
	"net/http"
	"testing"

	"github.com/alexanderramin/brieflist/internal/llm"
	"github.com/alexanderramin/brieflist/internal/testutil"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompanyInfo_StructuredSuccess(t *testing.T) {
	want := testutil.NewTestFinancials()
	env := newTestEnv(t, testutil.MustJSON(want))

	rec := env.do(t, http.MethodPost, "/api/company-info", `{"companyName":"Apple"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assertJSON(t, rec)

	got := decodeBody[CompanyInfoResponse](t, rec)
	if diff := cmp.Diff(want, got.Financials); diff != "" {
		t.Errorf("financials mismatch (-want +got):\n%s", diff)
	}
	assert.NotContains(t, rec.Body.String(), `"summary":""`)
	assert.Equal(t, 1, env.llm.CallCount())
	assert.Contains(t, env.llm.LastRequest().Messages[1].Content, "Apple")
}

func TestCompanyInfo_FreeTextSuccess(t *testing.T) {
	env := newTestEnv(t, "Apple designs phones.", withVariant("text"))

	rec := env.do(t, http.MethodPost, "/api/company-info", `{"companyName":"Apple"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody[map[string]any](t, rec)
	assert.Equal(t, map[string]any{"summary": "Apple designs phones."}, body)
}

func TestCompanyInfo_EmptyNameIs400WithoutCall(t *testing.T) {
	env := newTestEnv(t, `{}`)

	for _, body := range []string{`{"companyName":""}`, `{}`, `{"companyName":null}`, `{"companyName":5}`, `{"companyName":["Apple"]}`} {
		rec := env.do(t, http.MethodPost, "/api/company-info", body)
		require.Equal(t, http.StatusBadRequest, rec.Code, body)
		assert.Equal(t, "Company name is required", decodeBody[errorBody](t, rec).Error)
	}
	assert.Equal(t, 0, env.llm.CallCount())
}

func TestCompanyInfo_WhitespaceNameForwarded(t *testing.T) {
	env := newTestEnv(t, `{"summary":"No verified data.","dataAvailability":"Limited"}`)

	rec := env.do(t, http.MethodPost, "/api/company-info", `{"companyName":"   "}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, env.llm.CallCount())
}

func TestCompanyInfo_MissingKeyIs500WithoutCall(t *testing.T) {
	env := newTestEnv(t, `{}`, withoutKey())

	for _, body := range []string{`{"companyName":"Apple"}`, `{"companyName":""}`, `not json`} {
		rec := env.do(t, http.MethodPost, "/api/company-info", body)
		require.Equal(t, http.StatusInternalServerError, rec.Code, body)
		assert.Equal(t, "OpenAI API key not configured", decodeBody[errorBody](t, rec).Error)
	}
	assert.Equal(t, 0, env.llm.CallCount())
}

func TestCompanyInfo_InvalidBody(t *testing.T) {
	env := newTestEnv(t, `{}`)

	rec := env.do(t, http.MethodPost, "/api/company-info", `{"companyName":`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid request body", decodeBody[errorBody](t, rec).Error)
	assert.Equal(t, 0, env.llm.CallCount())
}

func TestCompanyInfo_InvalidCompletionIsFormatError(t *testing.T) {
	for _, text := range []string{"Apple is doing great.", "{\"summary\": ", "```json\n{}\n```"} {
		env := newTestEnv(t, text)

		rec := env.do(t, http.MethodPost, "/api/company-info", `{"companyName":"Apple"}`)
		require.Equal(t, http.StatusInternalServerError, rec.Code, text)
		assert.Equal(t, "Invalid response format from completion provider", decodeBody[errorBody](t, rec).Error)
	}
}

func TestCompanyInfo_EmptyCompletion(t *testing.T) {
	env := newTestEnv(t, "")

	rec := env.do(t, http.MethodPost, "/api/company-info", `{"companyName":"Apple"}`)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "No response from completion provider", decodeBody[errorBody](t, rec).Error)
}

func TestCompanyInfo_UpstreamErrorCarriesDetail(t *testing.T) {
	env := newTestEnv(t, "")
	env.llm.Err = &llm.ProviderError{StatusCode: 429, Message: "Rate limit reached", Type: "requests", Code: "rate_limit_exceeded"}

	rec := env.do(t, http.MethodPost, "/api/company-info", `{"companyName":"Apple"}`)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeBody[errorBody](t, rec)
	assert.Equal(t, errorBody{
		Error:   "Failed to fetch company information",
		Details: "Rate limit reached",
		Type:    "requests",
		Code:    "rate_limit_exceeded",
	}, body)
}

func TestCompanyInfo_UpstreamTimeout(t *testing.T) {
	env := newTestEnv(t, "")
	env.llm.Err = llm.ErrTimeout

	rec := env.do(t, http.MethodPost, "/api/company-info", `{"companyName":"Apple"}`)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeBody[errorBody](t, rec)
	assert.Equal(t, "TIMEOUT", body.Code)
	assert.Empty(t, body.Type)
	assert.NotContains(t, rec.Body.String(), `"type"`)
}

func TestCompanyInfo_WrongMethod(t *testing.T) {
	env := newTestEnv(t, `{}`)

	rec := env.do(t, http.MethodGet, "/api/company-info", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestCompanyInfo_NotEnabled(t *testing.T) {
	srv := NewServer(Options{})

	rec := newRecorderFor(t, srv, http.MethodPost, "/api/company-info", `{"companyName":"Apple"}`)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
