package http

import (
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/branch-salary-etl/internal/domain/branchsalary"
	"github.com/cmlabs-hris/branch-salary-etl/internal/handler/http/response"
)

type BranchSalaryHandler interface {
	// TriggerRun handles POST /branch-salary/runs
	TriggerRun(w http.ResponseWriter, r *http.Request)

	// LatestRun handles GET /branch-salary/runs/latest
	LatestRun(w http.ResponseWriter, r *http.Request)

	// ListRates handles GET /branch-salary/rates
	ListRates(w http.ResponseWriter, r *http.Request)
}

type branchSalaryHandlerImpl struct {
	branchSalaryService branchsalary.BranchSalaryService
}

func NewBranchSalaryHandler(branchSalaryService branchsalary.BranchSalaryService) BranchSalaryHandler {
	return &branchSalaryHandlerImpl{
		branchSalaryService: branchSalaryService,
	}
}

func (h *branchSalaryHandlerImpl) TriggerRun(w http.ResponseWriter, r *http.Request) {
	report, err := h.branchSalaryService.Run(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Branch salary rates refreshed", branchsalary.NewReportResponse(report))
}

func (h *branchSalaryHandlerImpl) LatestRun(w http.ResponseWriter, r *http.Request) {
	report, err := h.branchSalaryService.LatestReport()
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, branchsalary.NewReportResponse(report))
}

func (h *branchSalaryHandlerImpl) ListRates(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query()

	var filter branchsalary.RateFilter
	if yearStr := query.Get("year"); yearStr != "" {
		year, err := strconv.Atoi(yearStr)
		if err != nil {
			response.BadRequest(w, "invalid year parameter", nil)
			return
		}
		filter.Year = year
	}
	if monthStr := query.Get("month"); monthStr != "" {
		month, err := strconv.Atoi(monthStr)
		if err != nil {
			response.BadRequest(w, "invalid month parameter", nil)
			return
		}
		filter.Month = month
	}
	filter.BranchID = query.Get("branch_id")

	rates, err := h.branchSalaryService.ListRates(ctx, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, rates, &response.Meta{TotalItems: len(rates)})
}
