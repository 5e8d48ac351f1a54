package catalog

import "strings"

// manufacturerAliases maps common brand shorthand to the catalog's
// canonical manufacturer names. Lowercase keys.
var manufacturerAliases = map[string]string{
	"ti":                "Texas Instruments",
	"texas instruments": "Texas Instruments",
	"st":                "STMicroelectronics",
	"stm":               "STMicroelectronics",
	"stmicro":           "STMicroelectronics",
	"stmicroelectronics": "STMicroelectronics",
	"nxp":               "NXP Semiconductors",
	"onsemi":            "onsemi",
	"on semi":           "onsemi",
	"on semiconductor":  "onsemi",
	"microchip":         "Microchip Tech",
	"atmel":             "Microchip Tech",
	"adi":               "Analog Devices",
	"analog devices":    "Analog Devices",
	"maxim":             "Analog Devices",
	"infineon":          "Infineon Technologies",
	"cypress":           "Infineon Technologies",
	"nexperia":          "Nexperia",
	"diodes inc":        "Diodes Incorporated",
	"vishay":            "Vishay Intertech",
	"yageo":             "YAGEO",
	"uniroyal":          "UNI-ROYAL(Uniroyal Elec)",
	"uni-royal":         "UNI-ROYAL(Uniroyal Elec)",
	"samsung":           "Samsung Electro-Mechanics",
	"murata":            "Murata Electronics",
	"tdk":               "TDK",
	"espressif":         "Espressif Systems",
	"wch":               "WCH(Jiangsu Qin Heng)",
	"nordic":            "Nordic Semiconductor",
	"bosch":             "Bosch Sensortec",
	"rohm":              "ROHM Semicon",
	"toshiba":           "Toshiba",
	"renesas":           "Renesas Electronics",
	"silabs":            "Silicon Labs",
	"silicon labs":      "Silicon Labs",
	"ftdi":              "FTDI",
	"winbond":           "Winbond Elec",
	"gigadevice":        "GigaDevice Semicon",
	"aosong":            "Aosong(Guangzhou) Elec",
	"sensirion":         "Sensirion",
}

// CanonicalManufacturer resolves a brand shorthand to the catalog's
// canonical manufacturer name, passing unknown names through unchanged.
func CanonicalManufacturer(name string) string {
	if canonical, ok := manufacturerAliases[strings.ToLower(strings.TrimSpace(name))]; ok {
		return canonical
	}
	return name
}
