// Package job provides HTTP handlers for the /jobs endpoints.
package job

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Mitrevichin/Job-Tracking-App/internal/apperror"
	"github.com/Mitrevichin/Job-Tracking-App/internal/middleware"
	"github.com/Mitrevichin/Job-Tracking-App/internal/model"
	"github.com/Mitrevichin/Job-Tracking-App/internal/policy"
	"github.com/Mitrevichin/Job-Tracking-App/internal/query"
	jobservice "github.com/Mitrevichin/Job-Tracking-App/internal/service/job"
	"github.com/Mitrevichin/Job-Tracking-App/internal/utilities"
)

// JobController handles job related endpoints
type JobController struct {
	Service *jobservice.Service
}

// NewJobController creates a new instance of JobController
func NewJobController(service *jobservice.Service) *JobController {
	return &JobController{Service: service}
}

// identity returns the authenticated caller, aborting with 401 when RequireAuth didn't run.
func identity(c *gin.Context) (policy.Identity, bool) {
	caller, err := utilities.ExtractIdentity(c)
	if err != nil {
		utilities.AbortWithError(c, apperror.Unauthenticated(err.Error()))
		return policy.Identity{}, false
	}
	return caller, true
}

func bindJob(c *gin.Context) (model.EditableJobInfo, bool) {
	var info model.EditableJobInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		utilities.AbortWithError(c, apperror.BadRequest("Invalid request body"))
		return info, false
	}
	return info, true
}

// GetAllJobs returns one page of the caller's jobs
// @Summary List own jobs
// @Description Every query is optional. Search matches company or position as a literal, case insensitive substring
// @Tags Jobs
// @Produce json
// @Param search query string false "Substring of company or position"
// @Param jobStatus query string false "all, pending, interview or declined"
// @Param jobType query string false "all or one of the configured job types"
// @Param sort query string false "newest (default), oldest, a-z or z-a"
// @Param page query int false "Page number, starts at 1"
// @Success 200 {object} model.JobListResponse "One page of jobs"
// @Failure 401 {object} utilities.ErrorResponse "Missing or invalid token"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /jobs [get]
func (jc *JobController) GetAllJobs(c *gin.Context) {
	caller, ok := identity(c)
	if !ok {
		return
	}

	var params query.Params
	if err := c.ShouldBindQuery(&params); err != nil {
		utilities.AbortWithError(c, apperror.BadRequest("Invalid query parameters"))
		return
	}

	page, err := jc.Service.List(c.Request.Context(), caller, params)
	if err != nil {
		utilities.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.JobListResponse{
		TotalJobs:   page.TotalCount,
		NumOfPages:  page.NumberOfPages,
		CurrentPage: page.CurrentPage,
		Jobs:        page.Items,
	})
}

// CreateJob stores a new job owned by the caller
// @Summary Create a job
// @Description jobStatus, jobType and jobLocation fall back to pending, full-time and "My city"
// @Tags Jobs
// @Accept json
// @Produce json
// @Param Job body model.EditableJobInfo true "Job information"
// @Success 201 {object} model.JobResponse "Created job"
// @Failure 400 {object} utilities.ErrorResponse "Invalid job or demo account"
// @Failure 401 {object} utilities.ErrorResponse "Missing or invalid token"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /jobs [post]
func (jc *JobController) CreateJob(c *gin.Context) {
	caller, ok := identity(c)
	if !ok {
		return
	}
	info, ok := bindJob(c)
	if !ok {
		return
	}

	job, err := jc.Service.Create(c.Request.Context(), caller, info)
	if err != nil {
		utilities.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, model.JobResponse{Job: *job})
}

// GetJob returns a single job
// @Summary Get a job by id
// @Tags Jobs
// @Produce json
// @Param id path string true "Job id"
// @Success 200 {object} model.JobResponse "The job"
// @Failure 400 {object} utilities.ErrorResponse "Malformed id"
// @Failure 401 {object} utilities.ErrorResponse "Missing or invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not the owner"
// @Failure 404 {object} utilities.ErrorResponse "No job with this id"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /jobs/{id} [get]
func (jc *JobController) GetJob(c *gin.Context) {
	caller, ok := identity(c)
	if !ok {
		return
	}

	job, err := jc.Service.Get(c.Request.Context(), caller, c.Param("id"))
	if err != nil {
		utilities.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.JobResponse{Job: *job})
}

// UpdateJob replaces the editable fields of a job
// @Summary Update a job
// @Description Omitted jobStatus, jobType and jobLocation are reset to their defaults
// @Tags Jobs
// @Accept json
// @Produce json
// @Param id path string true "Job id"
// @Param Job body model.EditableJobInfo true "Job information"
// @Success 200 {object} model.JobMessageResponse "Updated job"
// @Failure 400 {object} utilities.ErrorResponse "Invalid job, malformed id or demo account"
// @Failure 401 {object} utilities.ErrorResponse "Missing or invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not the owner"
// @Failure 404 {object} utilities.ErrorResponse "No job with this id"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /jobs/{id} [patch]
func (jc *JobController) UpdateJob(c *gin.Context) {
	caller, ok := identity(c)
	if !ok {
		return
	}
	info, ok := bindJob(c)
	if !ok {
		return
	}

	job, err := jc.Service.Update(c.Request.Context(), caller, c.Param("id"), info)
	if err != nil {
		utilities.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.JobMessageResponse{Message: "job modified", Job: *job})
}

// DeleteJob removes a job
// @Summary Delete a job
// @Tags Jobs
// @Produce json
// @Param id path string true "Job id"
// @Success 200 {object} model.JobMessageResponse "Deleted job"
// @Failure 400 {object} utilities.ErrorResponse "Malformed id or demo account"
// @Failure 401 {object} utilities.ErrorResponse "Missing or invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not the owner"
// @Failure 404 {object} utilities.ErrorResponse "No job with this id"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /jobs/{id} [delete]
func (jc *JobController) DeleteJob(c *gin.Context) {
	caller, ok := identity(c)
	if !ok {
		return
	}

	job, err := jc.Service.Delete(c.Request.Context(), caller, c.Param("id"))
	if err != nil {
		utilities.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.JobMessageResponse{Message: "job deleted", Job: *job})
}

// ShowStats returns the status and monthly histograms of the caller's jobs
// @Summary Job statistics
// @Description Every status is reported, months are the most recent ones having jobs in chronological order
// @Tags Jobs
// @Produce json
// @Success 200 {object} model.StatsResponse "Statistics"
// @Failure 401 {object} utilities.ErrorResponse "Missing or invalid token"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /jobs/stats [get]
func (jc *JobController) ShowStats(c *gin.Context) {
	caller, ok := identity(c)
	if !ok {
		return
	}

	stats, err := jc.Service.Stats(c.Request.Context(), caller)
	if err != nil {
		utilities.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// RegisterRoutes mounts the job endpoints on rg. rg must already authenticate,
// mutate carries the stages guarding create, update and delete.
// /stats is registered before /:id.
func (jc *JobController) RegisterRoutes(rg *gin.RouterGroup, mutate middleware.Chain) {
	rg.GET("", jc.GetAllJobs)
	rg.POST("", mutate.Then(jc.CreateJob)...)
	rg.GET("/stats", jc.ShowStats)
	rg.GET("/:id", jc.GetJob)
	rg.PATCH("/:id", mutate.Then(jc.UpdateJob)...)
	rg.DELETE("/:id", mutate.Then(jc.DeleteJob)...)
}
