package domain

type Command interface {
	Room() RoomID
}

type PostMessageCommand struct {
	RoomID int
	Author Identity
	Text   string
}

func (c PostMessageCommand) Room() RoomID {
	return RoomID(c.RoomID)
}

type FetchSinceCommand struct {
	RoomID     int
	LastSeenID int
}

func (c FetchSinceCommand) Room() RoomID {
	return RoomID(c.RoomID)
}
