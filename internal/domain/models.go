package domain

import "time"

type User struct {
	ID               string `json:"_id,omitempty"`
	Name             string `json:"name"`
	Email            string `json:"email"`
	Avatar           string `json:"avatar,omitempty"`
	PhoneNumber      string `json:"phoneNumber,omitempty"`
	PublicProfile    bool   `json:"makeprofilepublic"`
	IsResumeUploaded bool   `json:"isResumeUploaded"`
}

// FirstName is what the home greeting shows; "User" when no name is known.
func (u *User) FirstName() string {
	if u == nil || u.Name == "" {
		return "User"
	}
	for i, r := range u.Name {
		if r == ' ' {
			return u.Name[:i]
		}
	}
	return u.Name
}

// Session is the single durable piece of client state.
type Session struct {
	AccessToken string `json:"accessToken"`
	User        *User  `json:"user,omitempty"`
}

func (s *Session) Valid() bool {
	return s != nil && s.AccessToken != ""
}

type Company struct {
	Name    string `json:"name"`
	Website string `json:"website,omitempty"`
	Logo    string `json:"logo,omitempty"`
	About   string `json:"about,omitempty"`
}

type Poster struct {
	Name    string   `json:"name"`
	Email   string   `json:"email,omitempty"`
	Company *Company `json:"company,omitempty"`
}

// CompanyName tolerates postings without a company record.
func (p Poster) CompanyName() string {
	if p.Company == nil || p.Company.Name == "" {
		return p.Name
	}
	return p.Company.Name
}

type StageTemplate struct {
	ID            string `json:"_id"`
	StageName     string `json:"stageName"`
	StageOrder    int    `json:"stageOrder"`
	InterviewType string `json:"interviewType"`
}

type Job struct {
	ID               string          `json:"_id"`
	Title            string          `json:"title"`
	Role             string          `json:"role"`
	BannerImage      string          `json:"bannerImage,omitempty"`
	Description      string          `json:"description"`
	Location         string          `json:"location"`
	SalaryRange      string          `json:"salaryRange"`
	JobType          string          `json:"jobType"`
	ExperienceLevel  string          `json:"experienceLevel"`
	SkillsRequired   []string        `json:"skillsRequired"`
	WorkMode         string          `json:"workerMode"`
	NumberOfOpenings int             `json:"numberOfOpenings"`
	Benefits         []string        `json:"benefits"`
	LastDateToApply  string          `json:"lastDateOfApplication,omitempty"`
	PostedBy         Poster          `json:"postedBy"`
	Tags             []string        `json:"tags,omitempty"`
	InterviewStages  []StageTemplate `json:"interviewStages,omitempty"`
	HasApplied       bool            `json:"hasApplied"`
	CreatedAt        time.Time       `json:"createdAt"`
}

type JobPage struct {
	Jobs       []Job `json:"jobs"`
	Total      int   `json:"total,omitempty"`
	Page       int   `json:"page,omitempty"`
	TotalPages int   `json:"totalPages,omitempty"`
}

type FilterOptions struct {
	Locations        []string `json:"locations"`
	ExperienceLevels []string `json:"experienceLevels"`
	WorkModes        []string `json:"workerModes"`
}

type ApplicationStatus string

const (
	StatusApplied     ApplicationStatus = "APPLIED"
	StatusInInterview ApplicationStatus = "IN_INTERVIEW"
	StatusShortlisted ApplicationStatus = "SHORTLISTED"
	StatusHired       ApplicationStatus = "HIRED"
	StatusRejected    ApplicationStatus = "REJECTED"
)

type Rejection struct {
	Reason     string    `json:"reason"`
	RejectedAt time.Time `json:"rejectedAt"`
}

type Application struct {
	ID               string            `json:"_id"`
	Status           ApplicationStatus `json:"status"`
	CurrentStage     string            `json:"currentStage"`
	IsShortlisted    bool              `json:"isShortlisted"`
	ShortlistedAt    *time.Time        `json:"shortlistedAt,omitempty"`
	IsHired          bool              `json:"isHired"`
	IsRejected       bool              `json:"isRejected"`
	RejectionDetails *Rejection        `json:"rejectionDetails,omitempty"`
	ProfileLink      string            `json:"profileLink,omitempty"`
	CreatedAt        time.Time         `json:"createdAt"`
	UpdatedAt        time.Time         `json:"updatedAt"`
}

type JobSummary struct {
	ID          string `json:"_id"`
	Role        string `json:"role"`
	Location    string `json:"location"`
	SalaryRange string `json:"salaryRange"`
	JobType     string `json:"jobType"`
}

// ApplicationSummary is one row of the applied-jobs list.
type ApplicationSummary struct {
	ID             string            `json:"_id"`
	Job            JobSummary        `json:"jobId"`
	Status         ApplicationStatus `json:"status"`
	Progress       string            `json:"progress"`
	InterviewCount int               `json:"interviewCount"`
	CreatedAt      time.Time         `json:"createdAt"`
}

type ApplicationStats struct {
	TotalApplications int `json:"totalApplications"`
	Applied           int `json:"applied"`
	InReview          int `json:"inReview"`
	Interviewed       int `json:"interviewed"`
	Offered           int `json:"offered"`
	Hired             int `json:"hired"`
	Rejected          int `json:"rejected"`
	Withdrawn         int `json:"withdrawn"`
}

type StageStatus string

const (
	StagePending    StageStatus = "PENDING"
	StageInProgress StageStatus = "IN_PROGRESS"
	StagePassed     StageStatus = "PASSED"
	StageRejected   StageStatus = "REJECTED"
)

type Interview struct {
	ScheduledAt  *time.Time `json:"scheduledDateTime,omitempty"`
	MeetingLink  string     `json:"meetingLink,omitempty"`
	Location     string     `json:"location,omitempty"`
	Instructions []string   `json:"instructions,omitempty"`
	Status       string     `json:"status,omitempty"`
}

// Stage is one step of an application's interview timeline. Order only
// defines display sequence.
type Stage struct {
	StageType      string      `json:"stageType"`
	StageName      string      `json:"stageName"`
	StageOrder     int         `json:"stageOrder"`
	InterviewType  string      `json:"interviewType"`
	IsRequired     bool        `json:"isRequired"`
	StageStatus    StageStatus `json:"stageStatus"`
	IsCurrentStage bool        `json:"isCurrentStage"`
	IsPastStage    bool        `json:"isPastStage"`
	Interview      *Interview  `json:"interview,omitempty"`
	PassedAt       *time.Time  `json:"passedAt,omitempty"`
	FailedAt       *time.Time  `json:"failedAt,omitempty"`
}

type ApplicationDetail struct {
	Application Application `json:"application"`
	Stages      []Stage     `json:"stages"`
	Job         *Job        `json:"job"`
}

// Filter is the ephemeral search state of the home screen.
type Filter struct {
	Keyword         string
	Page            int
	Limit           int
	Location        string
	ExperienceLevel string
	WorkMode        string
}

func DefaultFilter() Filter {
	return Filter{Page: 1, Limit: 10}
}

// HasAttributeFilters reports whether any of the dropdown filters is set.
func (f Filter) HasAttributeFilters() bool {
	return f.Location != "" || f.ExperienceLevel != "" || f.WorkMode != ""
}

type DashboardStats struct {
	SolvedProblems int `json:"solvedProblems"`
	TotalProblems  int `json:"totalProblems"`
	TotalDesigns   int `json:"totalDesigns"`
}

type FrameworkStat struct {
	Framework        string    `json:"framework"`
	TotalAttempts    int       `json:"totalAttempts"`
	CorrectSolutions int       `json:"correctSolutions"`
	WrongSolutions   int       `json:"wrongSolutions"`
	AverageScore     float64   `json:"averageScore"`
	LastUsed         time.Time `json:"lastUsed"`
}

type RecentSolution struct {
	Problem struct {
		Name       string `json:"name"`
		Difficulty string `json:"difficulty"`
	} `json:"problemId"`
	Competition *struct {
		Title string `json:"title"`
	} `json:"competitionId,omitempty"`
	Framework string    `json:"framework"`
	Score     float64   `json:"score"`
	IsCorrect bool      `json:"isCorrect"`
	TimeTaken int       `json:"timeTaken"`
	SolvedAt  time.Time `json:"solvedAt"`
}

type UserStats struct {
	ProblemsAttempted            int              `json:"totalProblemsAttempted"`
	ProblemsCorrect              int              `json:"totalProblemsCorrect"`
	ProblemsWrong                int              `json:"totalProblemsWrong"`
	CompetitionsJoined           int              `json:"totalCompetitionsJoined"`
	CompetitionProblemsAttempted int              `json:"totalCompetitionProblemsAttempted"`
	CompetitionProblemsCorrect   int              `json:"totalCompetitionProblemsCorrect"`
	CompetitionProblemsWrong     int              `json:"totalCompetitionProblemsWrong"`
	FrameworkStats               []FrameworkStat  `json:"frameworkStats"`
	RecentSolutions              []RecentSolution `json:"recentSolutions"`
}

type DifficultyStat struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
	Color string `json:"color"`
}
