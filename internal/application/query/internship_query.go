package query

import "internship-service/internal/application/common"

type ListInternshipsQuery struct {
	Search     string   `json:"search,omitempty"`
	Location   string   `json:"location,omitempty"`
	Type       string   `json:"type,omitempty"`
	MinStipend int64    `json:"min_stipend,omitempty"`
	Skills     []string `json:"skills,omitempty"`
	Limit      int      `json:"limit,omitempty"`
	Offset     int      `json:"offset,omitempty"`
}

type InternshipQueryResult struct {
	Result *common.InternshipResult `json:"result"`
}

type InternshipQueryListResult struct {
	Result []*common.InternshipResult `json:"result"`
}

type StatsQueryResult struct {
	Result *common.StatsResult `json:"result"`
}
