package vehicle

import "strconv"

// Model untuk tabel vehicles. Nomor chassis adalah kunci bisnis:
// complaint, odometer, dan file semuanya refer ke chassis, bukan ke id.
// Kendaraan immutable setelah insert; tidak ada route update/delete.
type Vehicle struct {
	ID                 int64  `json:"id"      gorm:"column:id;primaryKey"`
	ChassisNumber      string `json:"-"       gorm:"column:chassis_number;uniqueIndex"`
	VehicleNumber      string `json:"-"       gorm:"column:vehicle_number"` // kolom lama, masih terisi di data import awal
	RegistrationNumber string `json:"reg"     gorm:"column:registration_number"`
	Depot              string `json:"depot"   gorm:"column:depot"`
	MotorNumber        string `json:"motor"   gorm:"column:motor_number"`
	DispatchDate       string `json:"dispatch" gorm:"column:dispatch_date"`
	RegistrationDate   string `json:"regDate" gorm:"column:registration_date"`
	ManufacturingDate  string `json:"mfgDate" gorm:"column:manufacturing_date"`
	Model              string `json:"model"   gorm:"column:model"`
	Colour             string `json:"colour"  gorm:"column:colour"`
	SeatingCapacity    int    `json:"-"       gorm:"column:seating_capacity"`
	MotorPowerKw       int    `json:"-"       gorm:"column:motor_power_kw"`
}

func (Vehicle) TableName() string {
	return "vehicles"
}

// Chassis: pakai chassis_number, fallback ke vehicle_number untuk
// baris lama yang belum punya kolom chassis terisi.
func (v Vehicle) Chassis() string {
	if v.ChassisNumber != "" {
		return v.ChassisNumber
	}
	return v.VehicleNumber
}

// Response = bentuk domain yang dilihat client: chassis satu field,
// angka seating/motorKw jadi string.
type Response struct {
	ID       int64  `json:"id"`
	Chassis  string `json:"chassis"`
	Reg      string `json:"reg"`
	Depot    string `json:"depot"`
	Motor    string `json:"motor"`
	Dispatch string `json:"dispatch"`
	RegDate  string `json:"regDate"`
	MfgDate  string `json:"mfgDate"`
	Model    string `json:"model"`
	Colour   string `json:"colour"`
	Seating  string `json:"seating"`
	MotorKw  string `json:"motorKw"`
}

func (v Vehicle) ToResponse() Response {
	return Response{
		ID:       v.ID,
		Chassis:  v.Chassis(),
		Reg:      v.RegistrationNumber,
		Depot:    v.Depot,
		Motor:    v.MotorNumber,
		Dispatch: v.DispatchDate,
		RegDate:  v.RegistrationDate,
		MfgDate:  v.ManufacturingDate,
		Model:    v.Model,
		Colour:   v.Colour,
		Seating:  strconv.Itoa(v.SeatingCapacity),
		MotorKw:  strconv.Itoa(v.MotorPowerKw),
	}
}

// dipakai ADMIN saat create vehicle; seating & motorKw datang sebagai
// string dari form, di-parse ke int sebelum disimpan
type CreateRequest struct {
	Chassis  string `json:"chassis"`
	Reg      string `json:"reg"`
	Depot    string `json:"depot"`
	Motor    string `json:"motor"`
	Dispatch string `json:"dispatch"`
	RegDate  string `json:"regDate"`
	MfgDate  string `json:"mfgDate"`
	Model    string `json:"model"`
	Colour   string `json:"colour"`
	Seating  string `json:"seating"`
	MotorKw  string `json:"motorKw"`
}
