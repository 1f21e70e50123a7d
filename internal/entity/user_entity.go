package entity

// Credential is one stored user record from users.json. The hash is bcrypt;
// this service never writes the credential store.
type Credential struct {
	PasswordHash string `json:"password_hash"`
}

// CredentialDB mirrors the users.json layout: {"users": {username: {...}}}.
type CredentialDB struct {
	Users map[string]Credential `json:"users"`
}
