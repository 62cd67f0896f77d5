package services

// Client facing messages. The admin frontend shows them as they are.
const (
	MsgProductRequired   = "Nom i clientId són obligatoris"
	MsgVariantRequired   = "Nom i productId són obligatoris"
	MsgNameRequired      = "El nom és obligatori"
	MsgInvalidStatus     = "Estat no vàlid"
	MsgInvalidAttrType   = "Tipus d'atribut no vàlid"
	MsgInvalidRole       = "Rol no vàlid"
	MsgInvalidPrice      = "El preu i l'estoc no poden ser negatius"
	MsgCredentials       = "Email i contrasenya són obligatoris"
	MsgPasswordTooShort  = "La contrasenya ha de tenir almenys 6 caràcters"
	MsgWrongCredentials  = "Credencials incorrectes"
	MsgAdminOnly         = "Només els administradors poden fer aquesta acció"
	MsgClientMissing     = "El client no existeix"
	MsgCategoryMissing   = "La categoria no existeix"
	MsgParentMissing     = "La categoria pare no existeix"
	MsgProductMissing    = "El producte no existeix"
	MsgAttributeMissing  = "Algun dels atributs no existeix"
	MsgSelfParent        = "Una categoria no pot ser pare d'ella mateixa"
	MsgParentCycle       = "La categoria pare no pot ser una subcategoria seva"
	MsgProductNotFound   = "Producte no trobat"
	MsgVariantNotFound   = "Variant no trobada"
	MsgCategoryNotFound  = "Categoria no trobada"
	MsgAttributeNotFound = "Atribut no trobat"
	MsgClientNotFound    = "Client no trobat"
	MsgUserNotFound      = "Usuari no trobat"
	MsgHistoryNotFound   = "Registre d'historial no trobat"
	MsgProductHasVariant = "No es pot eliminar el producte perquè té variants"
	MsgCategoryChildren  = "No es pot eliminar la categoria perquè té subcategories"
	MsgCategoryProducts  = "No es pot eliminar la categoria perquè té productes"
	MsgCategoryVariants  = "No es pot eliminar la categoria perquè té variants"
	MsgAttributeValues   = "No es pot eliminar l'atribut perquè té valors assignats"
	MsgClientProducts    = "No es pot eliminar el client perquè té productes"
	MsgDuplicateSKU      = "Ja existeix un registre amb aquest SKU"
	MsgDuplicateClient   = "Ja existeix un client amb aquest nom"
	MsgDuplicateAttr     = "Ja existeix un atribut amb aquest nom"
	MsgDuplicateEmail    = "Aquest email ja està registrat"
	MsgImageRequired     = "Cal adjuntar una imatge"
	MsgInvalidImage      = "La imatge no és vàlida"
	MsgImportFile        = "El fitxer no és un full de càlcul vàlid"
)
