package slug

// transliterations maps lowercase runes of non-ASCII scripts to ASCII.
// Runes missing here fall back to NFD decomposition with marks stripped.
// An empty value drops the rune (Hebrew aleph/ayin, Cyrillic hard/soft signs).
var transliterations = map[rune]string{
	// Greek, modern (ELOT 743 style), including tonos and dialytika forms.
	'α': "a", 'ά': "a",
	'β': "v",
	'γ': "g",
	'δ': "d",
	'ε': "e", 'έ': "e",
	'ζ': "z",
	'η': "i", 'ή': "i",
	'θ': "th",
	'ι': "i", 'ί': "i", 'ϊ': "i", 'ΐ': "i",
	'κ': "k",
	'λ': "l",
	'μ': "m",
	'ν': "n",
	'ξ': "x",
	'ο': "o", 'ό': "o",
	'π': "p",
	'ρ': "r",
	'σ': "s", 'ς': "s",
	'τ': "t",
	'υ': "y", 'ύ': "y", 'ϋ': "y", 'ΰ': "y",
	'φ': "f",
	'χ': "ch",
	'ψ': "ps",
	'ω': "o", 'ώ': "o",

	// Hebrew consonants, final forms share the base letter.
	'א': "",
	'ב': "b",
	'ג': "g",
	'ד': "d",
	'ה': "h",
	'ו': "v",
	'ז': "z",
	'ח': "ch",
	'ט': "t",
	'י': "y",
	'כ': "k", 'ך': "k",
	'ל': "l",
	'מ': "m", 'ם': "m",
	'נ': "n", 'ן': "n",
	'ס': "s",
	'ע': "",
	'פ': "p", 'ף': "p",
	'צ': "ts", 'ץ': "ts",
	'ק': "k",
	'ר': "r",
	'ש': "sh",
	'ת': "t",

	// Cyrillic: Russian, Ukrainian, Belarusian, Serbian, Bulgarian.
	'а': "a",
	'б': "b",
	'в': "v",
	'г': "g",
	'ґ': "g",
	'д': "d",
	'ђ': "dj",
	'е': "e",
	'ё': "yo",
	'є': "ye",
	'ж': "zh",
	'з': "z",
	'и': "i",
	'і': "i",
	'ї': "yi",
	'й': "y",
	'ј': "j",
	'к': "k",
	'л': "l",
	'љ': "lj",
	'м': "m",
	'н': "n",
	'њ': "nj",
	'о': "o",
	'п': "p",
	'р': "r",
	'с': "s",
	'т': "t",
	'ћ': "c",
	'у': "u",
	'ў': "u",
	'ф': "f",
	'х': "kh",
	'ц': "ts",
	'ч': "ch",
	'џ': "dz",
	'ш': "sh",
	'щ': "shch",
	'ъ': "",
	'ы': "y",
	'ь': "",
	'э': "e",
	'ю': "yu",
	'я': "ya",

	// Accented Latin.
	'à': "a", 'á': "a", 'â': "a", 'ã': "a", 'ä': "a", 'ā': "a", 'ă': "a",
	'ç': "c",
	'è': "e", 'é': "e", 'ê': "e", 'ë': "e", 'ē': "e",
	'ì': "i", 'í': "i", 'î': "i", 'ï': "i", 'ī': "i", 'ı': "i",
	'ñ': "n",
	'ò': "o", 'ó': "o", 'ô': "o", 'õ': "o", 'ö': "o", 'ō': "o", 'ő': "o",
	'ù': "u", 'ú': "u", 'û': "u", 'ü': "u", 'ū': "u", 'ű': "u",
	'ý': "y", 'ÿ': "y",
	'ğ': "g",
	'ş': "s", 'ș': "s",
	'ț': "t", 'ţ': "t",
	'ß': "ss",

	// Polish.
	'ą': "a",
	'ć': "c",
	'ę': "e",
	'ł': "l",
	'ń': "n",
	'ś': "s",
	'ź': "z",
	'ż': "z",

	// Czech and Slovak.
	'č': "c",
	'ď': "d",
	'ě': "e",
	'ľ': "l",
	'ĺ': "l",
	'ň': "n",
	'ř': "r",
	'ŕ': "r",
	'š': "s",
	'ť': "t",
	'ů': "u",
	'ž': "z",

	// Scandinavian and Icelandic.
	'å': "a",
	'æ': "ae",
	'ø': "o",
	'ð': "d",
	'þ': "th",
	'œ': "oe",
}
