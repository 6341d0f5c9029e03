package command

type ToggleBookmarkCommand struct {
	InternshipId string `json:"internship_id"`
}

type ToggleBookmarkCommandResult struct {
	IsBookmarked bool `json:"is_bookmarked"`
}
