package http

type createProjectReq struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	FundingGoal int64  `json:"funding_goal"`
	Deadline    int64  `json:"deadline"`
	ImageURL    string `json:"image_url"`
	Category    string `json:"category"`
}

type fundReq struct {
	Amount int64 `json:"amount"`
}
