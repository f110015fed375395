package gazetteer

// defaultPlaces is the built-in Algerian gazetteer: wilaya capitals
// and large towns, with the biggest cities and the Algiers districts
// flagged for ranking. A YAML file can replace it at startup.
var defaultPlaces = []Place{
	// Major cities
	{Name: "Alger", Major: true},
	{Name: "Oran", Major: true},
	{Name: "Constantine", Major: true},
	{Name: "Annaba", Major: true},
	{Name: "Batna", Major: true},
	{Name: "Sétif", Major: true},
	{Name: "Tlemcen", Major: true},
	{Name: "Béjaïa", Major: true},
	{Name: "Blida", Major: true},
	{Name: "Skikda", Major: true},
	{Name: "Sidi Bel Abbès", Major: true},
	{Name: "Biskra", Major: true},
	{Name: "Tiaret", Major: true},
	{Name: "Mostaganem", Major: true},

	// Wilaya capitals and large towns
	{Name: "Adrar"},
	{Name: "Chlef"},
	{Name: "Laghouat"},
	{Name: "Oum El Bouaghi"},
	{Name: "Béchar"},
	{Name: "Bouira"},
	{Name: "Tamanrasset"},
	{Name: "Tébessa"},
	{Name: "Tizi Ouzou"},
	{Name: "Djelfa"},
	{Name: "Jijel"},
	{Name: "Saïda"},
	{Name: "Guelma"},
	{Name: "Médéa"},
	{Name: "M'Sila"},
	{Name: "Mascara"},
	{Name: "Ouargla"},
	{Name: "El Bayadh"},
	{Name: "Illizi"},
	{Name: "Bordj Bou Arréridj"},
	{Name: "Boumerdès"},
	{Name: "El Tarf"},
	{Name: "Tindouf"},
	{Name: "Tissemsilt"},
	{Name: "El Oued"},
	{Name: "Khenchela"},
	{Name: "Souk Ahras"},
	{Name: "Tipaza"},
	{Name: "Mila"},
	{Name: "Ain Defla"},
	{Name: "Naama"},
	{Name: "Ain Témouchent"},
	{Name: "Ghardaïa"},
	{Name: "Relizane"},
	{Name: "Timimoun"},
	{Name: "Ouled Djellal"},
	{Name: "In Salah"},
	{Name: "Touggourt"},
	{Name: "El M'Ghair"},
	{Name: "Akbou"},
	{Name: "Kherrata"},
	{Name: "Boufarik"},
	{Name: "Lakhdaria"},
	{Name: "Ténès"},
	{Name: "Aflou"},
	{Name: "Barika"},
	{Name: "Tolga"},
	{Name: "Sidi Okba"},
	{Name: "Taghit"},
	{Name: "Ain Sefra"},
	{Name: "Sour El Ghozlane"},

	// Algiers districts and neighborhoods
	{Name: "Hydra", District: true},
	{Name: "El Harrach", District: true},
	{Name: "Bab Ezzouar", District: true},
	{Name: "Rouiba", District: true},
	{Name: "Kouba", District: true},
	{Name: "Birtouta", District: true},
	{Name: "Zeralda", District: true},
	{Name: "Dar El Beida", District: true},
	{Name: "Hussein Dey", District: true},
	{Name: "Mohammadia", District: true},
	{Name: "Bab El Oued", District: true},
	{Name: "Casbah", District: true},
	{Name: "Bir Mourad Raïs"},
	{Name: "Cheraga"},
	{Name: "Draria"},
	{Name: "Douera"},
	{Name: "Bouzareah"},
	{Name: "Ain Benian"},
	{Name: "Staoueli"},
	{Name: "Baraki"},
	{Name: "Ain Taya"},
	{Name: "Bordj El Kiffan"},
	{Name: "Bordj El Bahri"},
	{Name: "Reghaia"},
	{Name: "El Achour"},
	{Name: "Ben Aknoun"},
	{Name: "Dély Ibrahim"},
	{Name: "Ouled Fayet"},
}
