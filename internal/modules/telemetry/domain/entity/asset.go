package entity

import "time"

const (
	AssetVehicle   = "vehicle"
	AssetEquipment = "equipment"
)

func ValidAssetType(t string) bool {
	return t == AssetVehicle || t == AssetEquipment
}

// Vehicle 车辆只读模型，里程由车载终端或人工录入
type Vehicle struct {
	ID        string    `gorm:"column:id;primaryKey;type:varchar(36)" json:"id"`
	Name      string    `gorm:"column:name;type:varchar(128)" json:"name"`
	Status    string    `gorm:"column:status;type:varchar(32)" json:"status"`
	Mileage   *float64  `gorm:"column:mileage" json:"mileage"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Vehicle) TableName() string {
	return "vehicles"
}

// Equipment 设备只读模型，使用小时数
type Equipment struct {
	ID        string    `gorm:"column:id;primaryKey;type:varchar(36)" json:"id"`
	Name      string    `gorm:"column:name;type:varchar(128)" json:"name"`
	Status    string    `gorm:"column:status;type:varchar(32)" json:"status"`
	Hours     *float64  `gorm:"column:hours" json:"hours"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Equipment) TableName() string {
	return "equipment"
}

type AssetRef struct {
	Type string `json:"asset_type"`
	ID   string `json:"asset_id"`
}

type AssetLabel struct {
	Name   string `json:"name"`
	Status string `json:"status"`
}
