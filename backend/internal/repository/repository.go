package repository

import "gorm.io/gorm"

// Cell 课表格子坐标
type Cell struct {
	Day  string
	Hour int
}

// Repository 所有 Repository 的聚合入口
type Repository struct {
	User         UserRepository
	Settings     SettingsRepository
	Slot         SlotRepository
	Note         NoteRepository
	Substitution SubstitutionRepository
	ChangeLog    ChangeLogRepository
	Share        ShareRepository
	Dataset      DatasetRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		User:         NewUserRepo(db),
		Settings:     NewSettingsRepo(db),
		Slot:         NewSlotRepo(db),
		Note:         NewNoteRepo(db),
		Substitution: NewSubstitutionRepo(db),
		ChangeLog:    NewChangeLogRepo(db),
		Share:        NewShareRepo(db),
		Dataset:      NewDatasetRepo(db),
	}
}
