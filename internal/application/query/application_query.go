package query

import "internship-service/internal/application/common"

type ApplicationQueryListResult struct {
	Result []*common.ApplicationResult `json:"result"`
}
