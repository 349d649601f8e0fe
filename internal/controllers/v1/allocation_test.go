package v1_test

import (
	"fmt"
	"net/http"
	"time"

	v1 "github.com/envelope-zero/tracker/internal/controllers/v1"
	"github.com/envelope-zero/tracker/internal/models"
	"github.com/envelope-zero/tracker/internal/types"
	"github.com/envelope-zero/tracker/test"
	"github.com/google/uuid"
)

func (suite *TestSuiteStandard) setAllocation(a v1.AllocationEditable, expectedStatus ...int) v1.AllocationResponse {
	// Default to 200 OK as expected status
	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusOK)
	}

	r := suite.request(http.MethodPost, "http://example.com/v1/allocations", a)
	test.AssertHTTPStatus(suite.T(), &r, expectedStatus...)

	var allocation v1.AllocationResponse
	test.DecodeResponse(suite.T(), &r, &allocation)

	return allocation
}

// TestAllocationsOverwrite verifies that setting an allocation twice
// keeps the latest amount only.
func (suite *TestSuiteStandard) TestAllocationsOverwrite() {
	c := suite.createTestCategory(v1.CategoryEditable{})

	first := suite.setAllocation(v1.AllocationEditable{CategoryID: c.Data.ID, Month: "2025-11", Budgeted: "400"})
	suite.Require().NotNil(first.Data)
	suite.Assert().Equal("2025-11", first.Data.Month)
	suite.Assert().True(money("400").Equal(first.Data.Budgeted))
	suite.Assert().Equal(fmt.Sprintf("http://example.com/v1/categories/%s/available?month=2025-11", c.Data.ID), first.Data.Links.Available)
	suite.Assert().Equal("http://example.com/v1/dashboard?month=2025-11", first.Data.Links.Dashboard)

	second := suite.setAllocation(v1.AllocationEditable{CategoryID: c.Data.ID, Month: "2025-11", Budgeted: "1,250.505"})
	suite.Assert().Equal(first.Data.ID, second.Data.ID)
	suite.Assert().True(money("1250.51").Equal(second.Data.Budgeted), "got %s", second.Data.Budgeted)

	var count int64
	models.DB.Model(&models.BudgetAllocation{}).Where("owner_id = ?", suite.owner).Count(&count)
	suite.Assert().Equal(int64(1), count)
}

// TestAllocationsDegradation verifies that invalid months and amounts
// do not fail the request.
func (suite *TestSuiteStandard) TestAllocationsDegradation() {
	c := suite.createTestCategory(v1.CategoryEditable{})

	a := suite.setAllocation(v1.AllocationEditable{CategoryID: c.Data.ID, Month: "November", Budgeted: "a lot"})
	suite.Require().NotNil(a.Data)
	suite.Assert().Equal(types.MonthOf(time.Now()).String(), a.Data.Month)
	suite.Assert().True(a.Data.Budgeted.IsZero())
}

func (suite *TestSuiteStandard) TestAllocationsErrors() {
	c := suite.createTestCategory(v1.CategoryEditable{})

	tests := []struct {
		name   string
		owner  uuid.UUID
		body   any
		status int
	}{
		{"Category of other owner", uuid.New(), v1.AllocationEditable{CategoryID: c.Data.ID, Month: "2025-11", Budgeted: "5"}, http.StatusNotFound},
		{"Unknown category", suite.owner, v1.AllocationEditable{CategoryID: uuid.New(), Month: "2025-11", Budgeted: "5"}, http.StatusNotFound},
		{"No category", suite.owner, v1.AllocationEditable{Month: "2025-11", Budgeted: "5"}, http.StatusBadRequest},
		{"Broken body", suite.owner, `{ "categoryId": `, http.StatusBadRequest},
		{"Amount as number", suite.owner, fmt.Sprintf(`{ "categoryId": "%s", "budgeted": 5 }`, c.Data.ID), http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			r := suite.requestAs(tt.owner, http.MethodPost, "http://example.com/v1/allocations", tt.body)
			test.AssertHTTPStatus(suite.T(), &r, tt.status)
		})
	}

	// Nothing was written, not even the budget month
	var allocations, months int64
	models.DB.Model(&models.BudgetAllocation{}).Count(&allocations)
	models.DB.Model(&models.BudgetMonth{}).Count(&months)
	suite.Assert().Equal(int64(0), allocations)
	suite.Assert().Equal(int64(0), months)
}
