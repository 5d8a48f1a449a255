package ldraw

// colourName maps LDraw colour codes to their display names. Codes above 800
// are annotation colours used by arrow overlays, not part of the official
// palette.
var colourName = map[int]string{
	-1:  "None",
	0:   "Black",
	1:   "Blue",
	2:   "Green",
	3:   "Dark Turquoise",
	4:   "Red",
	5:   "Dark Pink",
	6:   "Brown",
	7:   "Old Light Grey",
	8:   "Old Dark Grey",
	9:   "Light Blue",
	10:  "Bright Green",
	11:  "Light Turquoise",
	12:  "Salmon",
	13:  "Pink",
	14:  "Yellow",
	15:  "White",
	16:  "Default",
	17:  "Light Green",
	18:  "Light Yellow",
	19:  "Tan",
	20:  "Light Violet",
	21:  "Glow in Dark Opaque",
	22:  "Purple",
	23:  "Dark Blue Violet",
	24:  "Outline",
	25:  "Orange",
	26:  "Magenta",
	27:  "Lime",
	28:  "Dark Tan",
	29:  "Bright Pink",
	30:  "Medium Lavender",
	31:  "Lavender",
	33:  "Trans Dark Blue",
	34:  "Trans Green",
	35:  "Trans Bright Green",
	36:  "Trans Red",
	37:  "Trans Dark Pink",
	38:  "Trans Neon Orange",
	39:  "Trans Very Light Blue",
	40:  "Trans Black",
	41:  "Trans Medium Blue",
	42:  "Trans Neon Green",
	43:  "Trans Light Blue",
	44:  "Trans Bright Reddish Lilac",
	45:  "Trans Pink",
	46:  "Trans Yellow",
	47:  "Trans Clear",
	52:  "Trans Purple",
	54:  "Trans Neon Yellow",
	57:  "Trans Orange",
	60:  "Chrome Antique Brass",
	61:  "Chrome Blue",
	62:  "Chrome Green",
	63:  "Chrome Pink",
	64:  "Chrome Black",
	68:  "Very Light Orange",
	69:  "Bright Reddish Lilac",
	70:  "Reddish Brown",
	71:  "Light Bluish Gray",
	72:  "Dark Bluish Gray",
	73:  "Medium Blue",
	74:  "Medium Green",
	77:  "Light Pink",
	78:  "Light Nougat",
	80:  "Metallic Silver",
	81:  "Metallic Green",
	82:  "Metallic Gold",
	83:  "Metallic Black",
	84:  "Medium Nougat",
	85:  "Dark Purple",
	86:  "Dark Flesh",
	87:  "Metallic Dark Grey",
	89:  "Blue Violet",
	92:  "Nougat",
	100: "Light Salmon",
	110: "Violet",
	112: "Medium Violet",
	115: "Medium Lime",
	118: "Aqua",
	120: "Light Lime",
	125: "Light Orange",
	128: "Dark Nougat",
	134: "Copper",
	135: "Pearl Light Grey",
	137: "Metal Blue",
	142: "Pearl Light Gold",
	148: "Pearl Dark Grey",
	150: "Pearl Very Light Grey",
	151: "Very Light Bluish Grey",
	178: "Flat Dark Gold",
	179: "Flat Silver",
	183: "Pearl White",
	184: "Metallic Bright Red",
	186: "Metallic Dark Green",
	189: "Reddish Gold",
	191: "Bright Light Orange",
	212: "Bright Light Blue",
	216: "Rust",
	218: "Reddish Lilac",
	219: "Lilac",
	226: "Bright Light Yellow",
	231: "Trans Bright Light Orange",
	232: "Sky Blue",
	234: "Trans Fire Yellow",
	272: "Dark Blue",
	284: "Trans Reddish Lilac",
	285: "Trans Light Green",
	288: "Dark Green",
	293: "Trans Light Blue Violet",
	295: "Flamingo Pink",
	297: "Pearl Gold",
	300: "Metallic Copper",
	308: "Dark Brown",
	313: "Maersk Blue",
	320: "Dark Red",
	321: "Dark Azur",
	322: "Medium Azur",
	323: "Light Aqua",
	326: "Yellowish Green",
	330: "Olive Green",
	334: "Chrome Gold",
	335: "Sand Red",
	351: "Medium Dark Pink",
	353: "Coral",
	366: "Earth Orange",
	368: "Neon Yellow",
	373: "Sand Purple",
	378: "Sand Green",
	379: "Sand Blue",
	383: "Chrome Silver",
	450: "Fabuland Brown",
	462: "Medium Orange",
	484: "Dark Orange",
	503: "Very Light Grey",
	801: "Arrow Blue",
	802: "Arrow Green",
	804: "Arrow Red",
}

// colourHex maps LDraw colour codes to RGB hex values. Code -1 is the
// undefined grey fallback.
var colourHex = map[int]string{
	-1:  "808080",
	0:   "05131D",
	1:   "0055bf",
	2:   "257a3e",
	3:   "00838f",
	4:   "c91a09",
	5:   "c870a0",
	6:   "583927",
	7:   "9ba19d",
	8:   "6d6e5c",
	9:   "b4d2e3",
	10:  "4b9f4a",
	11:  "55a5af",
	12:  "f2705e",
	13:  "fc97ac",
	14:  "f2cd37",
	15:  "ffffff",
	16:  "101010",
	17:  "c2dab8",
	18:  "fbe696",
	19:  "e4cd9e",
	20:  "c9cae2",
	21:  "ECE8DE",
	22:  "81007b",
	23:  "2032b0",
	24:  "101010",
	25:  "fe8a18",
	26:  "923978",
	27:  "bbe90b",
	28:  "958a73",
	29:  "e4adc8",
	30:  "ac78ba",
	31:  "e1d5ed",
	33:  "0020a0",
	34:  "237841",
	35:  "56e646",
	36:  "c91a09",
	37:  "df6695",
	38:  "ff800d",
	39:  "c1dff0",
	40:  "635f52",
	41:  "559ab7",
	42:  "c0ff00",
	43:  "aee9ef",
	44:  "96709f",
	45:  "fc97ac",
	46:  "f5cd2f",
	47:  "fcfcfc",
	52:  "a5a5cb",
	54:  "dab000",
	57:  "f08f1c",
	60:  "645a4c",
	61:  "6c96bf",
	62:  "3cb371",
	63:  "aa4d8e",
	64:  "1b2a34",
	68:  "f3cf9b",
	69:  "cd6298",
	70:  "582a12",
	71:  "a0a5a9",
	72:  "6c6e68",
	73:  "5c9dd1",
	74:  "73dca1",
	77:  "fecccf",
	78:  "f6d7b3",
	80:  "a5a9b4",
	81:  "899b5f",
	82:  "dbac34",
	83:  "1a2831",
	84:  "cc702a",
	85:  "3f3691",
	86:  "7c503a",
	87:  "6d6e5c",
	89:  "4c61db",
	92:  "d09168",
	100: "febabd",
	110: "4354a3",
	112: "6874ca",
	115: "c7d23c",
	118: "b3d7d1",
	120: "d9e4a7",
	125: "f9ba61",
	128: "ad6140",
	134: "964a27",
	135: "9ca3a8",
	137: "5677ba",
	142: "dcbe61",
	148: "575857",
	150: "bbbdbc",
	151: "e6e3e0",
	178: "b4883e",
	179: "898788",
	183: "f2f3f2",
	184: "d60026",
	186: "008e3c",
	189: "ac8247",
	191: "f8bb3d",
	212: "86c1e1",
	216: "b31004",
	218: "8e5597",
	219: "564e9d",
	226: "fff03a",
	231: "fcb76d",
	232: "56bed6",
	234: "fbe890",
	272: "0d325b",
	284: "c281a5",
	285: "7dc291",
	288: "184632",
	293: "68abe4",
	295: "ff94c2",
	297: "cc9c2b",
	300: "c27f53",
	308: "352100",
	313: "54a9c8",
	320: "720e0f",
	321: "1498d7",
	322: "3ec2dd",
	323: "bddcd8",
	326: "dfeea5",
	330: "9b9a5a",
	334: "bba53d",
	335: "d67572",
	351: "f785b1",
	353: "FF6D77",
	366: "fa9c1c",
	368: "EBD800",
	373: "845e84",
	378: "a0bcac",
	379: "597184",
	383: "e0e0e0",
	450: "b67b50",
	462: "ffa70b",
	484: "a95500",
	503: "e6e3da",
	801: "0830FF",
	802: "08B010",
	804: "FF0000",
}
