package model

import (
	"fmt"
	"slices"
)

// Validate checks the invariants enforced on create and full update:
// required fields present and enum fields inside their value sets.
func (a *Application) Validate() error {
	if a.Company.Name == "" {
		return fmt.Errorf("company.name is required")
	}
	if a.Job.Title == "" {
		return fmt.Errorf("job.title is required")
	}
	if a.Details.AppliedDate == "" {
		return fmt.Errorf("application.applied_date is required")
	}
	if _, err := ParseDate(a.Details.AppliedDate); err != nil {
		return fmt.Errorf("application.applied_date is not a valid date: %w", err)
	}
	if !slices.Contains(Statuses, a.Details.Status) {
		return fmt.Errorf("application.status %q is not a valid status", a.Details.Status)
	}
	if a.Job.EmploymentType != "" && !slices.Contains(EmploymentTypes, a.Job.EmploymentType) {
		return fmt.Errorf("job.employment_type %q is not a valid employment type", a.Job.EmploymentType)
	}
	if a.Job.WorkMode != "" && !slices.Contains(WorkModes, a.Job.WorkMode) {
		return fmt.Errorf("job.work_mode %q is not a valid work mode", a.Job.WorkMode)
	}
	if a.Job.ExperienceLevel != "" && !slices.Contains(ExperienceLevels, a.Job.ExperienceLevel) {
		return fmt.Errorf("job.experience_level %q is not a valid experience level", a.Job.ExperienceLevel)
	}
	return nil
}
