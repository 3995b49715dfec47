package georef

// country reference data: ISO 3166-1 name, alpha-2 code, continent. An empty
// continent means the standard conversion has no answer for the code (polar
// and disputed territories); those resolve through the fallback map or end up
// "Unknown".
type country struct {
	name      string
	code      string
	continent string
}

var countries = []country{
	{"Afghanistan", "AF", "Asia"},
	{"Albania", "AL", "Europe"},
	{"Algeria", "DZ", "Africa"},
	{"American Samoa", "AS", "Oceania"},
	{"Andorra", "AD", "Europe"},
	{"Angola", "AO", "Africa"},
	{"Anguilla", "AI", "North America"},
	{"Antarctica", "AQ", ""},
	{"Antigua and Barbuda", "AG", "North America"},
	{"Argentina", "AR", "South America"},
	{"Armenia", "AM", "Asia"},
	{"Aruba", "AW", "North America"},
	{"Australia", "AU", "Oceania"},
	{"Austria", "AT", "Europe"},
	{"Azerbaijan", "AZ", "Asia"},
	{"Bahamas", "BS", "North America"},
	{"Bahrain", "BH", "Asia"},
	{"Bangladesh", "BD", "Asia"},
	{"Barbados", "BB", "North America"},
	{"Belarus", "BY", "Europe"},
	{"Belgium", "BE", "Europe"},
	{"Belize", "BZ", "North America"},
	{"Benin", "BJ", "Africa"},
	{"Bermuda", "BM", "North America"},
	{"Bhutan", "BT", "Asia"},
	{"Bolivia, Plurinational State of", "BO", "South America"},
	{"Bonaire, Sint Eustatius and Saba", "BQ", "North America"},
	{"Bosnia and Herzegovina", "BA", "Europe"},
	{"Botswana", "BW", "Africa"},
	{"Bouvet Island", "BV", "Antarctica"},
	{"Brazil", "BR", "South America"},
	{"British Indian Ocean Territory", "IO", "Asia"},
	{"Brunei Darussalam", "BN", "Asia"},
	{"Bulgaria", "BG", "Europe"},
	{"Burkina Faso", "BF", "Africa"},
	{"Burundi", "BI", "Africa"},
	{"Cabo Verde", "CV", "Africa"},
	{"Cambodia", "KH", "Asia"},
	{"Cameroon", "CM", "Africa"},
	{"Canada", "CA", "North America"},
	{"Cayman Islands", "KY", "North America"},
	{"Central African Republic", "CF", "Africa"},
	{"Chad", "TD", "Africa"},
	{"Chile", "CL", "South America"},
	{"China", "CN", "Asia"},
	{"Christmas Island", "CX", "Asia"},
	{"Cocos (Keeling) Islands", "CC", "Asia"},
	{"Colombia", "CO", "South America"},
	{"Comoros", "KM", "Africa"},
	{"Congo", "CG", "Africa"},
	{"Congo, The Democratic Republic of the", "CD", "Africa"},
	{"Cook Islands", "CK", "Oceania"},
	{"Costa Rica", "CR", "North America"},
	{"Croatia", "HR", "Europe"},
	{"Cuba", "CU", "North America"},
	{"Curaçao", "CW", "North America"},
	{"Cyprus", "CY", "Asia"},
	{"Czechia", "CZ", "Europe"},
	{"Côte d'Ivoire", "CI", "Africa"},
	{"Denmark", "DK", "Europe"},
	{"Djibouti", "DJ", "Africa"},
	{"Dominica", "DM", "North America"},
	{"Dominican Republic", "DO", "North America"},
	{"Ecuador", "EC", "South America"},
	{"Egypt", "EG", "Africa"},
	{"El Salvador", "SV", "North America"},
	{"Equatorial Guinea", "GQ", "Africa"},
	{"Eritrea", "ER", "Africa"},
	{"Estonia", "EE", "Europe"},
	{"Eswatini", "SZ", "Africa"},
	{"Ethiopia", "ET", "Africa"},
	{"Falkland Islands (Malvinas)", "FK", "South America"},
	{"Faroe Islands", "FO", "Europe"},
	{"Fiji", "FJ", "Oceania"},
	{"Finland", "FI", "Europe"},
	{"France", "FR", "Europe"},
	{"French Guiana", "GF", "South America"},
	{"French Polynesia", "PF", "Oceania"},
	{"French Southern Territories", "TF", ""},
	{"Gabon", "GA", "Africa"},
	{"Gambia", "GM", "Africa"},
	{"Georgia", "GE", "Asia"},
	{"Germany", "DE", "Europe"},
	{"Ghana", "GH", "Africa"},
	{"Gibraltar", "GI", "Europe"},
	{"Greece", "GR", "Europe"},
	{"Greenland", "GL", "North America"},
	{"Grenada", "GD", "North America"},
	{"Guadeloupe", "GP", "North America"},
	{"Guam", "GU", "Oceania"},
	{"Guatemala", "GT", "North America"},
	{"Guernsey", "GG", "Europe"},
	{"Guinea", "GN", "Africa"},
	{"Guinea-Bissau", "GW", "Africa"},
	{"Guyana", "GY", "South America"},
	{"Haiti", "HT", "North America"},
	{"Heard Island and McDonald Islands", "HM", "Antarctica"},
	{"Holy See (Vatican City State)", "VA", ""},
	{"Honduras", "HN", "North America"},
	{"Hong Kong", "HK", "Asia"},
	{"Hungary", "HU", "Europe"},
	{"Iceland", "IS", "Europe"},
	{"India", "IN", "Asia"},
	{"Indonesia", "ID", "Asia"},
	{"Iran, Islamic Republic of", "IR", "Asia"},
	{"Iraq", "IQ", "Asia"},
	{"Ireland", "IE", "Europe"},
	{"Isle of Man", "IM", "Europe"},
	{"Israel", "IL", "Asia"},
	{"Italy", "IT", "Europe"},
	{"Jamaica", "JM", "North America"},
	{"Japan", "JP", "Asia"},
	{"Jersey", "JE", "Europe"},
	{"Jordan", "JO", "Asia"},
	{"Kazakhstan", "KZ", "Asia"},
	{"Kenya", "KE", "Africa"},
	{"Kiribati", "KI", "Oceania"},
	{"Korea, Democratic People's Republic of", "KP", "Asia"},
	{"Korea, Republic of", "KR", "Asia"},
	{"Kuwait", "KW", "Asia"},
	{"Kyrgyzstan", "KG", "Asia"},
	{"Lao People's Democratic Republic", "LA", "Asia"},
	{"Latvia", "LV", "Europe"},
	{"Lebanon", "LB", "Asia"},
	{"Lesotho", "LS", "Africa"},
	{"Liberia", "LR", "Africa"},
	{"Libya", "LY", "Africa"},
	{"Liechtenstein", "LI", "Europe"},
	{"Lithuania", "LT", "Europe"},
	{"Luxembourg", "LU", "Europe"},
	{"Macao", "MO", "Asia"},
	{"Madagascar", "MG", "Africa"},
	{"Malawi", "MW", "Africa"},
	{"Malaysia", "MY", "Asia"},
	{"Maldives", "MV", "Asia"},
	{"Mali", "ML", "Africa"},
	{"Malta", "MT", "Europe"},
	{"Marshall Islands", "MH", "Oceania"},
	{"Martinique", "MQ", "North America"},
	{"Mauritania", "MR", "Africa"},
	{"Mauritius", "MU", "Africa"},
	{"Mayotte", "YT", "Africa"},
	{"Mexico", "MX", "North America"},
	{"Micronesia, Federated States of", "FM", "Oceania"},
	{"Moldova, Republic of", "MD", "Europe"},
	{"Monaco", "MC", "Europe"},
	{"Mongolia", "MN", "Asia"},
	{"Montenegro", "ME", "Europe"},
	{"Montserrat", "MS", "North America"},
	{"Morocco", "MA", "Africa"},
	{"Mozambique", "MZ", "Africa"},
	{"Myanmar", "MM", "Asia"},
	{"Namibia", "NA", "Africa"},
	{"Nauru", "NR", "Oceania"},
	{"Nepal", "NP", "Asia"},
	{"Netherlands", "NL", "Europe"},
	{"New Caledonia", "NC", "Oceania"},
	{"New Zealand", "NZ", "Oceania"},
	{"Nicaragua", "NI", "North America"},
	{"Niger", "NE", "Africa"},
	{"Nigeria", "NG", "Africa"},
	{"Niue", "NU", "Oceania"},
	{"Norfolk Island", "NF", "Oceania"},
	{"North Macedonia", "MK", "Europe"},
	{"Northern Mariana Islands", "MP", "Oceania"},
	{"Norway", "NO", "Europe"},
	{"Oman", "OM", "Asia"},
	{"Pakistan", "PK", "Asia"},
	{"Palau", "PW", "Oceania"},
	{"Palestine, State of", "PS", "Asia"},
	{"Panama", "PA", "North America"},
	{"Papua New Guinea", "PG", "Oceania"},
	{"Paraguay", "PY", "South America"},
	{"Peru", "PE", "South America"},
	{"Philippines", "PH", "Asia"},
	{"Pitcairn", "PN", ""},
	{"Poland", "PL", "Europe"},
	{"Portugal", "PT", "Europe"},
	{"Puerto Rico", "PR", "North America"},
	{"Qatar", "QA", "Asia"},
	{"Romania", "RO", "Europe"},
	{"Russian Federation", "RU", "Europe"},
	{"Rwanda", "RW", "Africa"},
	{"Réunion", "RE", "Africa"},
	{"Saint Barthélemy", "BL", "North America"},
	{"Saint Helena, Ascension and Tristan da Cunha", "SH", "Africa"},
	{"Saint Kitts and Nevis", "KN", "North America"},
	{"Saint Lucia", "LC", "North America"},
	{"Saint Martin (French part)", "MF", "North America"},
	{"Saint Pierre and Miquelon", "PM", "North America"},
	{"Saint Vincent and the Grenadines", "VC", "North America"},
	{"Samoa", "WS", "Oceania"},
	{"San Marino", "SM", "Europe"},
	{"Sao Tome and Principe", "ST", "Africa"},
	{"Saudi Arabia", "SA", "Asia"},
	{"Senegal", "SN", "Africa"},
	{"Serbia", "RS", "Europe"},
	{"Seychelles", "SC", "Africa"},
	{"Sierra Leone", "SL", "Africa"},
	{"Singapore", "SG", "Asia"},
	{"Sint Maarten (Dutch part)", "SX", ""},
	{"Slovakia", "SK", "Europe"},
	{"Slovenia", "SI", "Europe"},
	{"Solomon Islands", "SB", "Oceania"},
	{"Somalia", "SO", "Africa"},
	{"South Africa", "ZA", "Africa"},
	{"South Georgia and the South Sandwich Islands", "GS", "South America"},
	{"South Sudan", "SS", "Africa"},
	{"Spain", "ES", "Europe"},
	{"Sri Lanka", "LK", "Asia"},
	{"Sudan", "SD", "Africa"},
	{"Suriname", "SR", "South America"},
	{"Svalbard and Jan Mayen", "SJ", "Europe"},
	{"Sweden", "SE", "Europe"},
	{"Switzerland", "CH", "Europe"},
	{"Syrian Arab Republic", "SY", "Asia"},
	{"Taiwan, Province of China", "TW", "Asia"},
	{"Tajikistan", "TJ", "Asia"},
	{"Tanzania, United Republic of", "TZ", "Africa"},
	{"Thailand", "TH", "Asia"},
	{"Timor-Leste", "TL", ""},
	{"Togo", "TG", "Africa"},
	{"Tokelau", "TK", "Oceania"},
	{"Tonga", "TO", "Oceania"},
	{"Trinidad and Tobago", "TT", "North America"},
	{"Tunisia", "TN", "Africa"},
	{"Turkmenistan", "TM", "Asia"},
	{"Turks and Caicos Islands", "TC", "North America"},
	{"Tuvalu", "TV", "Oceania"},
	{"Türkiye", "TR", "Asia"},
	{"Uganda", "UG", "Africa"},
	{"Ukraine", "UA", "Europe"},
	{"United Arab Emirates", "AE", "Asia"},
	{"United Kingdom", "GB", "Europe"},
	{"United States", "US", "North America"},
	{"United States Minor Outlying Islands", "UM", ""},
	{"Uruguay", "UY", "South America"},
	{"Uzbekistan", "UZ", "Asia"},
	{"Vanuatu", "VU", "Oceania"},
	{"Venezuela, Bolivarian Republic of", "VE", "South America"},
	{"Viet Nam", "VN", "Asia"},
	{"Virgin Islands, British", "VG", "North America"},
	{"Virgin Islands, U.S.", "VI", "North America"},
	{"Wallis and Futuna", "WF", "Oceania"},
	{"Western Sahara", "EH", ""},
	{"Yemen", "YE", "Asia"},
	{"Zambia", "ZM", "Africa"},
	{"Zimbabwe", "ZW", "Africa"},
	{"Åland Islands", "AX", "Europe"},
}
