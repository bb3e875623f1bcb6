package odometer

// Model untuk tabel odometer_readings. Append-only: tidak ada update
// atau delete. Nilai diharapkan naik terus tapi tidak di-enforce.
type Reading struct {
	ID            int64   `json:"id"      gorm:"column:id;primaryKey"`
	ChassisNumber string  `json:"chassis" gorm:"column:chassis_number"`
	Value         float64 `json:"value"   gorm:"column:reading_value"`
	Date          string  `json:"date"    gorm:"column:reading_date"`
}

func (Reading) TableName() string {
	return "odometer_readings"
}

// WithVehicle = reading plus nomor registrasi kendaraan hasil join
type WithVehicle struct {
	Reading
	VehicleReg string `json:"vehicleReg" gorm:"column:registration_number"`
}
