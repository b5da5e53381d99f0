package model

// BlockState 双向拉黑标记
type BlockState struct {
	IBlockedThem  bool `json:"iBlockedThem"`
	TheyBlockedMe bool `json:"theyBlockedMe"`
}

// Profile 公开主页 DTO，本层只读
type Profile struct {
	ID               string     `json:"id"`
	Name             string     `json:"name"`
	AvatarURL        string     `json:"avatarUrl,omitempty"`
	Headline         string     `json:"headline,omitempty"`
	About            string     `json:"about,omitempty"`
	Country          string     `json:"country,omitempty"`
	City             string     `json:"city,omitempty"`
	Skills           []string   `json:"skills,omitempty"`
	Languages        []string   `json:"languages,omitempty"`
	ConnectionStatus string     `json:"connectionStatus"`
	ConnectionID     string     `json:"connectionId,omitempty"`
	Block            BlockState `json:"block"`
	Meetings         []Meeting  `json:"meetings,omitempty"`
}

// FundingProject 众筹详情 DTO
type FundingProject struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Pitch       string   `json:"pitch,omitempty"`
	OwnerID     string   `json:"ownerId"`
	OwnerName   string   `json:"ownerName,omitempty"`
	GoalAmount  float64  `json:"goalAmount"`
	Raised      float64  `json:"raised"`
	Currency    string   `json:"currency,omitempty"`
	Deadline    string   `json:"deadline,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	SupportsNum int      `json:"supportsNum"`
}

// Need 需求详情 DTO
type Need struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	OwnerID     string   `json:"ownerId"`
	OwnerName   string   `json:"ownerName,omitempty"`
	Urgency     string   `json:"urgency,omitempty"`
	Categories  []string `json:"categories,omitempty"`
}
