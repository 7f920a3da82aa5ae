package user

import "time"

const (
	RoleUser       = "USER"
	RoleInstructor = "INSTRUCTOR"
	RoleAdmin      = "ADMIN"
)

// UserDocument is the persisted shape of an account. The verification
// token fields are set iff the account is pending verification; both are
// cleared in the same update that flips EmailVerified.
type UserDocument struct {
	Id                       string `bson:"_id"`
	Email                    string `bson:"email"`
	Password                 string `bson:"password"`
	FullName                 string `bson:"fullName,omitempty"`
	Role                     string `bson:"role"`
	EmailVerified            bool   `bson:"emailVerified"`
	EmailVerificationToken   string `bson:"emailVerificationToken,omitempty"`
	EmailVerificationExpires int64  `bson:"emailVerificationExpires,omitempty"`
	CreatedAt                int64  `bson:"createdAt"`
	UpdatedAt                int64  `bson:"updatedAt"`
}

// Profile is the response projection of an account. The password hash is
// never transmitted.
type Profile struct {
	Id            string    `json:"id"`
	Email         string    `json:"email"`
	FullName      string    `json:"fullName,omitempty"`
	Role          string    `json:"role"`
	EmailVerified bool      `json:"emailVerified"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func (document *UserDocument) ToProfile() *Profile {
	return &Profile{
		Id:            document.Id,
		Email:         document.Email,
		FullName:      document.FullName,
		Role:          document.Role,
		EmailVerified: document.EmailVerified,
		CreatedAt:     time.Unix(document.CreatedAt, 0).UTC(),
		UpdatedAt:     time.Unix(document.UpdatedAt, 0).UTC(),
	}
}
