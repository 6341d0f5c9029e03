package query

import "internship-service/internal/application/common"

type UserQueryResult struct {
	Result *common.UserResult `json:"result"`
}
