package models

// Session identifies a logged-in caller. It is handed out by login and must
// accompany every privileged call; the services check it against the stored
// record each time.
type Session struct {
	UserID string
	Token  string
}

func (s Session) IsZero() bool {
	return s.UserID == "" && s.Token == ""
}
