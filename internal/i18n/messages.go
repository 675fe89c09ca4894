package i18n

// malay maps each English UI string to its Bahasa Melayu rendering.
// Nutrient names and stored data are never translated.
var malay = map[string]string{
	"Fertilizer Cost Calculator": "Kalkulator Kos Baja",
	"Fertilizer Catalog":         "Katalog Baja",
	"Admin Panel":                "Panel Pentadbir",
	"Language":                   "Bahasa",
	"Brand":                      "Jenama",
	"Packet Weight (kg)":         "Berat Paket (kg)",
	"Price/Packet (%s)":          "Harga/Paket (%s)",
	"Nutrients":                  "Nutrien",
	"Nutrient Content":           "Kandungan Nutrien",
	"Action":                     "Tindakan",
	"Calculate":                  "Kira",
	"N/A":                        "T/B",
	"No fertilizers found in the master list. Please add some via the Admin Panel.": "Tiada baja dalam senarai induk. Sila tambah melalui Panel Pentadbir.",

	"Saved Calculations":              "Pengiraan Tersimpan",
	"Export CSV":                      "Eksport CSV",
	"You have no saved calculations.": "Anda tiada pengiraan tersimpan.",
	"Untitled Calculation":            "Pengiraan Tanpa Nama",
	"using %s":                        "menggunakan %s",
	"Your Inputs":                     "Input Anda",
	"Calculated Results":              "Keputusan Pengiraan",
	"Trees":                           "Pokok",
	"Rate/Tree":                       "Kadar/Pokok",
	"Apps/Year":                       "Aplikasi/Tahun",
	"Total Annual Cost":               "Jumlah Kos Tahunan",
	"Annual Cost/Tree":                "Kos Tahunan/Pokok",
	"Price/kg":                        "Harga/kg",
	"Packets/Year":                    "Paket/Tahun",
	"Total Need/Year":                 "Jumlah Keperluan/Tahun",
	"Price/kg Nutrients":              "Harga/kg Nutrien",
	"Edit":                            "Sunting",
	"Delete":                          "Padam",
	"Are you sure you want to delete this calculation?": "Adakah anda pasti mahu memadam pengiraan ini?",
	"%d calculation(s) hidden because their fertilizer is no longer in the catalog.": "%d pengiraan disembunyikan kerana bajanya tiada lagi dalam katalog.",
	"%d calculation(s) hidden because their figures cannot be costed.":              "%d pengiraan disembunyikan kerana angkanya tidak dapat dikira.",

	"New Calculation with %s":  "Pengiraan Baharu dengan %s",
	"Editing: %s":              "Menyunting: %s",
	"Calculation Name":         "Nama Pengiraan",
	"Number of Trees":          "Bilangan Pokok",
	"Rate per Tree (kg)":       "Kadar setiap Pokok (kg)",
	"Applications per Year":    "Aplikasi setiap Tahun",
	"Save Calculation":         "Simpan Pengiraan",
	"Cancel":                   "Batal",
	"Back":                     "Kembali",
	"Calculation saved.":       "Pengiraan disimpan.",
	"Calculation deleted.":     "Pengiraan dipadam.",
	"Error saving calculation: %s": "Ralat menyimpan pengiraan: %s",

	"Add Fertilizer to Master List":    "Tambah Baja ke Senarai Induk",
	"Save Fertilizer":                  "Simpan Baja",
	"Fertilizer saved to master list!": "Baja disimpan ke senarai induk!",
	"Error saving fertilizer: %s":      "Ralat menyimpan baja: %s",
}
