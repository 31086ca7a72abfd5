package directory

import "time"

type Employee struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	FullName     string     `json:"fullName"`
	Phone        *string    `json:"phone,omitempty"`
	Address      *string    `json:"address,omitempty"`
	SSN          *string    `json:"ssn,omitempty"`
	Role         string     `json:"role"`
	Department   *string    `json:"department,omitempty"`
	ManagerID    *string    `json:"managerId,omitempty"`
	HireDate     *time.Time `json:"hireDate,omitempty"`
	IsDeleted    bool       `json:"isDeleted"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// View renders the employee for API responses and export payloads. The
// sensitive variant adds the PII fields that only the subject, HR, or admin
// may see.
func (e Employee) View(includeSensitive bool) map[string]any {
	view := map[string]any{
		"id":         e.ID,
		"email":      e.Email,
		"full_name":  e.FullName,
		"role":       e.Role,
		"department": deref(e.Department),
		"hire_date":  nil,
		"created_at": e.CreatedAt.UTC().Format(time.RFC3339),
	}
	if e.HireDate != nil {
		view["hire_date"] = e.HireDate.Format("2006-01-02")
	}
	if includeSensitive {
		view["phone"] = deref(e.Phone)
		view["address"] = deref(e.Address)
		view["ssn"] = deref(e.SSN)
		view["manager_id"] = deref(e.ManagerID)
	}
	return view
}

func deref(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

type Salary struct {
	ID          string     `json:"id"`
	EmployeeID  string     `json:"employeeId"`
	BaseSalary  float64    `json:"baseSalary"`
	Bonus       float64    `json:"bonus"`
	Month       string     `json:"month"`
	PaymentDate *time.Time `json:"paymentDate,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

type PerformanceReview struct {
	ID           string    `json:"id"`
	EmployeeID   string    `json:"employeeId"`
	ReviewerID   *string   `json:"reviewerId,omitempty"`
	Rating       int       `json:"rating"`
	Feedback     string    `json:"feedback"`
	ReviewPeriod string    `json:"reviewPeriod"`
	CreatedAt    time.Time `json:"createdAt"`
}

type Attendance struct {
	ID          string    `json:"id"`
	EmployeeID  string    `json:"employeeId"`
	Date        time.Time `json:"date"`
	HoursWorked *float64  `json:"hoursWorked,omitempty"`
	LeaveType   *string   `json:"leaveType,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}
