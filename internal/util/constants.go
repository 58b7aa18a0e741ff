package util

const (
	DateFormat = "2006-01-02"
	TimeFormat = "2006-01-02 15:04:05"
)

const (
	StorageLocal = "local"
	StorageMinio = "minio"
	StorageOSS   = "oss"
)

// Upload destinations, kept compatible with the paths the frontend expects.
const (
	QuestionImageDir = "quizzes/questions/images"
	AvatarDir        = "users/avatars"
)

const MimeImage = "image/"
