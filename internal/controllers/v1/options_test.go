package v1_test

import (
	"fmt"
	"net/http"

	v1 "github.com/envelope-zero/tracker/internal/controllers/v1"
	"github.com/envelope-zero/tracker/test"
	"github.com/google/uuid"
)

func (suite *TestSuiteStandard) TestOptions() {
	group := suite.createTestCategoryGroup(v1.CategoryGroupEditable{})
	category := suite.createTestCategory(v1.CategoryEditable{CategoryGroupID: group.Data.ID})
	transaction := suite.createTestTransaction(v1.TransactionEditable{Amount: money("-1")})

	tests := []struct {
		path  string
		allow string
	}{
		{"http://example.com/v1/dashboard", "OPTIONS, GET"},
		{"http://example.com/v1/allocations", "OPTIONS, POST"},
		{"http://example.com/v1/category-groups", "OPTIONS, GET, POST"},
		{fmt.Sprintf("http://example.com/v1/category-groups/%s", group.Data.ID), "OPTIONS, DELETE"},
		{"http://example.com/v1/categories", "OPTIONS, POST"},
		{fmt.Sprintf("http://example.com/v1/categories/%s", category.Data.ID), "OPTIONS, PATCH, DELETE"},
		{fmt.Sprintf("http://example.com/v1/categories/%s/available", category.Data.ID), "OPTIONS, GET"},
		{"http://example.com/v1/accounts", "OPTIONS, GET, POST"},
		{fmt.Sprintf("http://example.com/v1/accounts/%s", transaction.Data.AccountID), "OPTIONS, PATCH, DELETE"},
		{"http://example.com/v1/payees", "OPTIONS, GET"},
		{fmt.Sprintf("http://example.com/v1/payees/%s", *transaction.Data.PayeeID), "OPTIONS, DELETE"},
		{"http://example.com/v1/transactions", "OPTIONS, GET, POST"},
		{fmt.Sprintf("http://example.com/v1/transactions/%s", transaction.Data.ID), "OPTIONS, DELETE"},
	}

	for _, tt := range tests {
		suite.Run(tt.path, func() {
			r := suite.request(http.MethodOptions, tt.path, "")
			test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
			suite.Assert().Equal(tt.allow, r.Header().Get("allow"))
		})
	}
}

func (suite *TestSuiteStandard) TestOptionsNotFound() {
	for _, path := range []string{
		"http://example.com/v1/category-groups/%s",
		"http://example.com/v1/categories/%s",
		"http://example.com/v1/categories/%s/available",
		"http://example.com/v1/accounts/%s",
		"http://example.com/v1/payees/%s",
		"http://example.com/v1/transactions/%s",
	} {
		suite.Run(path, func() {
			r := suite.request(http.MethodOptions, fmt.Sprintf(path, uuid.New()), "")
			test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)

			r = suite.request(http.MethodOptions, fmt.Sprintf(path, "nope"), "")
			test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
		})
	}
}

// TestUnauthenticated verifies that no endpoint can be used without a valid token.
func (suite *TestSuiteStandard) TestUnauthenticated() {
	id := uuid.New()

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "http://example.com/v1/dashboard"},
		{http.MethodPost, "http://example.com/v1/allocations"},
		{http.MethodGet, "http://example.com/v1/category-groups"},
		{http.MethodDelete, fmt.Sprintf("http://example.com/v1/category-groups/%s", id)},
		{http.MethodPost, "http://example.com/v1/categories"},
		{http.MethodPatch, fmt.Sprintf("http://example.com/v1/categories/%s", id)},
		{http.MethodGet, fmt.Sprintf("http://example.com/v1/categories/%s/available", id)},
		{http.MethodGet, "http://example.com/v1/accounts"},
		{http.MethodGet, "http://example.com/v1/payees"},
		{http.MethodGet, "http://example.com/v1/transactions"},
	}

	headers := []struct {
		name   string
		header map[string]string
	}{
		{"No header", map[string]string{}},
		{"Wrong scheme", map[string]string{"Authorization": "Basic dXNlcjpwYXNz"}},
		{"Wrong secret", test.BearerFor(suite.T(), "not-the-secret", "", suite.owner)},
	}

	for _, h := range headers {
		for _, tt := range tests {
			suite.Run(fmt.Sprintf("%s %s %s", h.name, tt.method, tt.path), func() {
				r := test.Request(suite.T(), tt.method, tt.path, "", h.header)
				test.AssertHTTPStatus(suite.T(), &r, http.StatusUnauthorized)
			})
		}
	}
}
