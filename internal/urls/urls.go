package urls

// Documentation URLs referenced in error messages and command help
// All Zabbix URLs point to the upstream manual at https://www.zabbix.com/documentation/

// APIChanges54 documents the removal of the screen API in Zabbix 5.4,
// referenced by the version gate when a server is too new.
const APIChanges54 = "https://www.zabbix.com/documentation/current/en/manual/api/changes_5.2_-_5.4"

// ScreenObject is the screen object reference for the last API
// generation that carried it (5.2).
const ScreenObject = "https://www.zabbix.com/documentation/5.2/en/manual/api/reference/screen/object"

// ScreenItemObject is the screen item object reference, covering
// resource types and cell placement fields.
const ScreenItemObject = "https://www.zabbix.com/documentation/5.2/en/manual/api/reference/screenitem/object"

// APIReference is the general JSON-RPC API entry page,
// useful when diagnosing authentication or transport issues.
const APIReference = "https://www.zabbix.com/documentation/5.2/en/manual/api"
