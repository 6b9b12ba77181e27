package follow

type FollowStorage interface {
	CreateFollow(userID, authorID uint) error
	DeleteFollow(userID, authorID uint) error
	IsFollowing(userID, authorID uint) (bool, error)
	GetFollowedAuthorIds(userID uint) ([]uint, error)
}
