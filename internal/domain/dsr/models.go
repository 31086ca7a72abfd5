package dsr

import "time"

type Request struct {
	ID             string     `json:"id"`
	EmployeeID     string     `json:"employeeId"`
	RequestType    string     `json:"requestType"`
	Status         string     `json:"status"`
	ResultFilePath *string    `json:"resultFilePath,omitempty"`
	RequestedAt    time.Time  `json:"requestedAt"`
	CompletedAt    *time.Time `json:"completedAt,omitempty"`
}

type ConsentRecord struct {
	ID          string     `json:"id"`
	EmployeeID  string     `json:"employeeId"`
	ConsentType string     `json:"consentType"`
	IsGranted   bool       `json:"isGranted"`
	GrantedAt   *time.Time `json:"grantedAt,omitempty"`
	RevokedAt   *time.Time `json:"revokedAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}
