package domain

type UserProfile struct {
	ID                 string
	Timezone           string
	PreferredProjectID *string
}
