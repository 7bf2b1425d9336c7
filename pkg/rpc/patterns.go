package rpc

// Service names. Each service owns one request queue.
const (
	ServiceBanks          = "banks"
	ServiceExpenses       = "expenses"
	ServiceIncomes        = "incomes"
	ServiceUsers          = "users"
	ServiceAuthentication = "authentication"
	ServiceBudgets        = "budgets"
	ServiceEvents         = "events"
)

// Services lists every service name.
var Services = []string{
	ServiceBanks,
	ServiceExpenses,
	ServiceIncomes,
	ServiceUsers,
	ServiceAuthentication,
	ServiceBudgets,
	ServiceEvents,
}

// Pattern is a message pattern within a service.
type Pattern string

// banks
const (
	GetBank         Pattern = "GET_BANK"
	AddBalance      Pattern = "ADD_BALANCE"
	SubtractBalance Pattern = "SUBTRACT_BALANCE"
	UpdateCurrency  Pattern = "UPDATE_CURRENCY"
)

// expenses, incomes, budgets, events
const (
	Create     Pattern = "CREATE"
	FindAll    Pattern = "FIND_ALL"
	FindOne    Pattern = "FIND_ONE"
	Update     Pattern = "UPDATE"
	Delete     Pattern = "DELETE"
	HardDelete Pattern = "HARD_DELETE"
)

// expenses
const GetStatistics Pattern = "GET_STATISTICS"

// incomes
const (
	CreditNow Pattern = "CREDIT_NOW"
	FindDue   Pattern = "FIND_DUE"
)

// users
const (
	UpdateUser     Pattern = "UPDATE_USER"
	UpdatePassword Pattern = "UPDATE_PASSWORD"
)

// authentication
const (
	SignUp       Pattern = "SIGN_UP"
	SignIn       Pattern = "SIGN_IN"
	RefreshToken Pattern = "REFRESH_TOKEN"
	SignOut      Pattern = "SIGN_OUT"
)

// budgets, events
const (
	AddParticipant    Pattern = "ADD_PARTICIPANT"
	RemoveParticipant Pattern = "REMOVE_PARTICIPANT"
)
