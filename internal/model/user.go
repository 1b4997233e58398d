package model

// User 사용자 테이블 — users
// Position 은 자유 텍스트 직급 라벨("과장" 등),
// Role 은 역할 기반 결재자 지정에 쓰이는 책임 명칭(직급과 별개)이다.
type User struct {
	UserID   string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	Name     string  `gorm:"type:varchar(100);not null"                     json:"name"`
	Position string  `gorm:"type:varchar(50)"                               json:"position"`
	Level    int     `gorm:"not null;default:0"                             json:"level"`
	Role     string  `gorm:"type:varchar(50)"                               json:"role"`
	TeamID   *string `gorm:"type:uuid"                                      json:"team_id,omitempty"`
	BaseModel

	// 관계
	Team *Team `gorm:"foreignKey:TeamID;references:TeamID" json:"team,omitempty"`
}

// TableName 테이블명 지정
func (User) TableName() string { return "users" }
