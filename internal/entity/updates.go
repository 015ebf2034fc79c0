package entity

// UserUpdates 账户更新字段
type UserUpdates struct {
	Role   *string
	Status *string
	// SetSupervisor 为 true 时写入 SupervisorID（可为 nil，表示清空）
	SetSupervisor bool
	SupervisorID  *uint
	PasswordHash  *string
}

// ToMap 转换为 GORM 更新 map（内部使用）
func (u UserUpdates) ToMap() map[string]interface{} {
	updates := make(map[string]interface{})
	if u.Role != nil {
		updates["role"] = *u.Role
	}
	if u.Status != nil {
		updates["status"] = *u.Status
	}
	if u.SetSupervisor {
		updates["supervisor_id"] = u.SupervisorID
	}
	if u.PasswordHash != nil {
		updates["password_hash"] = *u.PasswordHash
	}
	return updates
}

// IsEmpty 检查是否没有任何更新字段
func (u UserUpdates) IsEmpty() bool {
	return len(u.ToMap()) == 0
}

// TaskUpdates 任务更新字段（日期不可变，不在其中）
type TaskUpdates struct {
	Name        *string
	Hours       *float64
	Description *string
}

// ToMap 转换为 GORM 更新 map（内部使用）
func (u TaskUpdates) ToMap() map[string]interface{} {
	updates := make(map[string]interface{})
	if u.Name != nil {
		updates["name"] = *u.Name
	}
	if u.Hours != nil {
		updates["hours"] = *u.Hours
	}
	if u.Description != nil {
		updates["description"] = *u.Description
	}
	return updates
}

// IsEmpty 检查是否没有任何更新字段
func (u TaskUpdates) IsEmpty() bool {
	return len(u.ToMap()) == 0
}
